// Package jobs is a client for the TAS job accounting endpoint. It shares
// the transport and error classes of package tas but not its envelope: a
// successful answer is {"jobs": [...]}.
package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gotas/pkg/logging"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL      = "JOBS_URL"
	EnvUser     = "JOBS_USER"
	EnvPassword = "JOBS_PASSWORD"
)

type Config struct {
	BaseURL     string
	Credentials tas.Credentials
}

// ConfigFromEnv reads JOBS_URL, JOBS_USER and JOBS_PASSWORD, defaulting the
// URL to tas.DefaultBaseURL.
func ConfigFromEnv() Config {
	base := os.Getenv(EnvURL)
	if base == "" {
		base = tas.DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Credentials: tas.Credentials{
			Username: os.Getenv(EnvUser),
			Secret:   os.Getenv(EnvPassword),
		},
	}
}

// Client lists jobs. It is immutable and safe for concurrent use.
type Client struct {
	baseURL   string
	creds     tas.Credentials
	transport tas.Transport
	logger    logging.Logger
}

type Option func(*Client)

func WithTransport(t tas.Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = tas.NewHTTPTransport(hc) }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := (tas.Config{BaseURL: cfg.BaseURL}).Validate(); err != nil {
		return nil, fmt.Errorf("jobs: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds:   cfg.Credentials,
		logger:  logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = tas.NewHTTPTransport(nil)
	}
	return c, nil
}

func NewClientFromEnv(opts ...Option) (*Client, error) {
	return NewClient(ConfigFromEnv(), opts...)
}

// Query selects jobs. Resource, Start and End are required; the rest narrow
// the result when set.
type Query struct {
	Resource     string
	Start        string
	End          string
	AllocationID int64
	Username     string
	Queue        string
}

func (q Query) values() (url.Values, error) {
	if q.Resource == "" {
		return nil, fmt.Errorf("%w: resource is required", tas.ErrInvalidArgument)
	}
	if q.Start == "" || q.End == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", tas.ErrInvalidArgument)
	}
	v := url.Values{}
	v.Set("resource", q.Resource)
	v.Set("start", q.Start)
	v.Set("end", q.End)
	if q.AllocationID != 0 {
		v.Set("allocationId", strconv.FormatInt(q.AllocationID, 10))
	}
	if q.Username != "" {
		v.Set("username", q.Username)
	}
	if q.Queue != "" {
		v.Set("queueName", strings.ToUpper(q.Queue))
	}
	return v, nil
}

// GetJobs lists the jobs matching q.
func (c *Client) GetJobs(ctx context.Context, q Query) ([]tas.Record, error) {
	const op = "get jobs"
	params, err := q.values()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reqID := uuid.NewString()
	req := &tas.Request{
		Method:   http.MethodGet,
		URL:      c.baseURL + "/v1/Jobs?" + params.Encode(),
		Header:   http.Header{},
		Username: c.creds.Username,
		Password: c.creds.Secret,
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	log := c.logger.With("op", op, "request_id", reqID)
	log.Debug(ctx, "jobs request", "resource", q.Resource)

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		err = &tas.TransportError{Err: err}
		log.Warn(ctx, "jobs request failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := resolveJobs(resp.StatusCode, resp.Body)
	if err != nil {
		log.Warn(ctx, "jobs request failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	jobs, err := tas.DecodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return jobs, nil
}
