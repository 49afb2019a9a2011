package tas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gotas/pkg/logging"
)

// Client calls the TAS REST API. It holds only immutable configuration, so
// one Client may be shared by any number of goroutines.
type Client struct {
	baseURL   string
	creds     Credentials
	transport Transport
	logger    logging.Logger
	soapNS    string
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithTransport replaces the default HTTPTransport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = NewHTTPTransport(hc) }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithDirectoryNamespace sets the XML namespace of the legacy SOAP directory
// service operations.
func WithDirectoryNamespace(ns string) Option {
	return func(c *Client) { c.soapNS = ns }
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: trimBase(cfg.BaseURL),
		creds:   cfg.Credentials,
		logger:  logging.Nop{},
		soapNS:  defaultSOAPNamespace,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(nil)
	}
	return c, nil
}

// NewClientFromEnv builds a Client from ConfigFromEnv.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	return NewClient(ConfigFromEnv(), opts...)
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// call is the one request path for REST operations: it builds the request,
// sends it and hands the response to ResolveEnvelope. Errors are prefixed
// with op.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	reqID := uuid.NewString()
	req := &Request{
		Method:   method,
		URL:      u,
		Header:   http.Header{},
		Username: c.creds.Username,
		Password: c.creds.Secret,
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, invalidArgf("encode request body: %v", err))
		}
		req.Body = b
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("op", op, "request_id", reqID)
	log.Debug(ctx, "tas request", "method", method, "path", path)

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		err = &TransportError{Err: err}
		log.Warn(ctx, "tas request failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := ResolveEnvelope(resp.StatusCode, resp.Body)
	if err != nil {
		log.Warn(ctx, "tas request failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (c *Client) callRecord(ctx context.Context, op, method, path string, query url.Values, body any) (Record, error) {
	raw, err := c.call(ctx, op, method, path, query, body)
	if err != nil {
		return nil, err
	}
	rec, err := DecodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func (c *Client) callRecords(ctx context.Context, op, method, path string, query url.Values, body any) ([]Record, error) {
	raw, err := c.call(ctx, op, method, path, query, body)
	if err != nil {
		return nil, err
	}
	recs, err := DecodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recs, nil
}

// pathf joins escaped path segments onto a format, e.g.
// pathf("/v1/users/%s", id).
func pathf(format string, segments ...any) string {
	esc := make([]any, len(segments))
	for i, s := range segments {
		esc[i] = url.PathEscape(fmt.Sprint(s))
	}
	return fmt.Sprintf(format, esc...)
}

func sourceQuery(source string) url.Values {
	if source == "" {
		return nil
	}
	return url.Values{"source": []string{source}}
}
