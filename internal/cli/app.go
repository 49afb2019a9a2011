package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/gotas/internal/config"
	"github.com/dmitrijs2005/gotas/pkg/jobs"
	"github.com/dmitrijs2005/gotas/pkg/logging"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// App runs one invocation of the tas command.
type App struct {
	cfg        *config.Config
	reader     *bufio.Reader
	out        io.Writer
	errOut     io.Writer
	httpClient *http.Client
	logger     logging.Logger
	sync       func() error

	tas  *tas.Client
	jobs *jobs.Client
}

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
		a.errOut = errOut
	}
}

// WithHTTPClient sets the HTTP client both service clients use.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) { a.httpClient = hc }
}

// WithLogger replaces the logger built from the configured format and level.
func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
		sync:   func() error { return nil },
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes the command line args.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// setup runs once flags are parsed.
func (a *App) setup() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.logger == nil {
		return a.buildLogger()
	}
	return nil
}

// buildLogger writes to stderr with zap, or with slog for the text and json
// formats.
func (a *App) buildLogger() error {
	if a.cfg.LogFormat == logging.FormatZap {
		z, err := logging.NewZapLoggerWithLevel(a.cfg.LogLevel)
		if err != nil {
			return err
		}
		a.logger = z
		a.sync = z.Sync
		return nil
	}
	l, err := logging.NewSlogLoggerWithLevel(a.errOut, a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = l
	return nil
}

// tasClient builds the TAS client on first use, prompting for the client
// secret when only the key is configured.
func (a *App) tasClient() (*tas.Client, error) {
	if a.tas != nil {
		return a.tas, nil
	}
	cfg := a.cfg.TAS
	if cfg.Credentials.Username != "" && cfg.Credentials.Secret == "" {
		secret, err := GetPassword(a.errOut, "Client secret: ")
		if err != nil {
			return nil, err
		}
		cfg.Credentials.Secret = string(secret)
		wipe(secret)
	}

	opts := []tas.Option{tas.WithLogger(a.logger)}
	if a.httpClient != nil {
		opts = append(opts, tas.WithHTTPClient(a.httpClient))
	}
	if a.cfg.DirectoryNamespace != "" {
		opts = append(opts, tas.WithDirectoryNamespace(a.cfg.DirectoryNamespace))
	}
	c, err := tas.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	a.tas = c
	return c, nil
}

func (a *App) jobsClient() (*jobs.Client, error) {
	if a.jobs != nil {
		return a.jobs, nil
	}
	cfg := a.cfg.Jobs
	if cfg.Credentials.Username != "" && cfg.Credentials.Secret == "" {
		secret, err := GetPassword(a.errOut, "Jobs password: ")
		if err != nil {
			return nil, err
		}
		cfg.Credentials.Secret = string(secret)
		wipe(secret)
	}

	opts := []jobs.Option{jobs.WithLogger(a.logger)}
	if a.httpClient != nil {
		opts = append(opts, jobs.WithHTTPClient(a.httpClient))
	}
	c, err := jobs.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	a.jobs = c
	return c, nil
}

func (a *App) print(v any) error {
	return printResult(a.out, a.cfg.Output, v)
}
