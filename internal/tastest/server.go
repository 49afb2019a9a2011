// Package tastest runs an in-process fake of the TAS service for tests.
//
// Routes are registered per method and path with a canned status and body;
// every request is recorded so tests can assert on what was sent.
package tastest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// Service account the fake expects when built with TASClient.
const (
	User   = "svc"
	Secret = "s3cret"
)

// Request is one request the fake received.
type Request struct {
	Method   string
	Path     string
	Query    string
	Body     []byte
	Header   http.Header
	Username string
	Password string
}

type reply struct {
	status int
	body   string
}

type route struct {
	method string
	path   string
}

// Server is a fake TAS service backed by a gin router.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[route]reply
	engine   *gin.Engine
	requests []Request
}

// New starts a Server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{routes: make(map[route]reply)}
	s.engine = s.buildEngine()
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Server.Close)
	return s
}

// serveHTTP hands the request to the engine current at arrival; Handle swaps
// in a new one rather than adding routes to an engine that is serving.
func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e := s.engine
	s.mu.Unlock()
	e.ServeHTTP(w, r)
}

// buildEngine registers every canned reply as a gin route behind the
// recording middleware. Callers hold s.mu or own s exclusively.
func (s *Server) buildEngine() *gin.Engine {
	e := gin.New()
	e.RedirectTrailingSlash = false
	e.RedirectFixedPath = false
	e.Use(s.record)
	for rt, r := range s.routes {
		r := r
		e.Handle(rt.method, rt.path, func(c *gin.Context) {
			c.Data(r.status, "application/json", []byte(r.body))
		})
	}
	e.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "no route for %s %s", c.Request.Method, c.Request.URL.Path)
	})
	return e
}

func (s *Server) record(c *gin.Context) {
	body, _ := c.GetRawData()
	user, pass, _ := c.Request.BasicAuth()

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		Query:    c.Request.URL.RawQuery,
		Body:     body,
		Header:   c.Request.Header.Clone(),
		Username: user,
		Password: pass,
	})
	s.mu.Unlock()
	c.Next()
}

// Handle answers method+path with a raw status and body. path is matched
// literally.
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route{method: method, path: path}] = reply{status: status, body: body}
	s.engine = s.buildEngine()
}

// Success answers method+path with a success envelope around result.
func (s *Server) Success(method, path string, result any) {
	s.Handle(method, path, http.StatusOK, envelope("success", result, nil))
}

// Fail answers method+path with an error envelope carrying message.
func (s *Server) Fail(method, path string, status int, message string) {
	s.Handle(method, path, status, envelope("error", nil, &message))
}

func envelope(status string, result any, message *string) string {
	b, err := json.Marshal(map[string]any{"status": status, "result": result, "message": message})
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// TASConfig points a tas.Config at the fake with the expected credentials.
func (s *Server) TASConfig() tas.Config {
	return tas.Config{
		BaseURL:     s.URL,
		Credentials: tas.Credentials{Username: User, Secret: Secret},
	}
}

// TASClient returns a client talking to the fake.
func (s *Server) TASClient(t testing.TB, opts ...tas.Option) *tas.Client {
	t.Helper()
	opts = append([]tas.Option{tas.WithHTTPClient(s.Client())}, opts...)
	c, err := tas.NewClient(s.TASConfig(), opts...)
	if err != nil {
		t.Fatalf("tastest: new client: %v", err)
	}
	return c
}
