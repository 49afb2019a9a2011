package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gotas/internal/config"
	"github.com/dmitrijs2005/gotas/internal/tastest"
	"github.com/dmitrijs2005/gotas/pkg/jobs"
	"github.com/dmitrijs2005/gotas/pkg/logging"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

type harness struct {
	// ownLogger leaves logger construction to the App.
	ownLogger bool

	srv    *tastest.Server
	cfg    *config.Config
	stdin  string
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := tastest.New(t)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.TAS = srv.TASConfig()
	cfg.Jobs = jobs.Config{
		BaseURL:     srv.URL,
		Credentials: tas.Credentials{Username: "jobs", Secret: "jobs-pw"},
	}
	return &harness{srv: srv, cfg: cfg}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.errOut.Reset()
	opts := []Option{
		WithIO(strings.NewReader(h.stdin), &h.out, &h.errOut),
		WithHTTPClient(h.srv.Client()),
	}
	if !h.ownLogger {
		opts = append(opts, WithLogger(logging.Nop{}))
	}
	app := NewApp(h.cfg, opts...)
	return app.Run(context.Background(), args)
}

// decode parses stdout as JSON into v.
func (h *harness) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(h.out.Bytes(), v), "stdout: %s", h.out.String())
}

// stubPasswords makes readPassword return answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	var mu sync.Mutex
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			t.Errorf("unexpected password prompt")
			return nil, errPasswordMismatch
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
	t.Cleanup(func() { readPassword = old })
}
