package tas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Request is one outbound call as built by a client. Credentials travel
// separately from Header so transports can apply them the way they need to.
type Request struct {
	Method   string
	URL      string
	Header   http.Header
	Body     []byte
	Username string
	Password string
}

// Response is the raw result of a Request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends a Request and returns the raw response. It returns an
// error only when no response could be obtained at all.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport sends requests with net/http using HTTP Basic auth.
//
// The client built by NewHTTPTransport(nil) has no timeout. A call whose
// context is never cancelled can block for as long as the server keeps the
// connection open; pass a context with a deadline, or an *http.Client with
// Timeout set, if that matters to the caller.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport(c *http.Client) *HTTPTransport {
	if c == nil {
		c = &http.Client{}
	}
	return &HTTPTransport{client: c}
}

func (t *HTTPTransport) Send(ctx context.Context, r *Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.SetBasicAuth(r.Username, r.Password)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}
