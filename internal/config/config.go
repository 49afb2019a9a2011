package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gotas/internal/flagx"
	"github.com/dmitrijs2005/gotas/pkg/jobs"
	"github.com/dmitrijs2005/gotas/pkg/logging"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Environment variables read on top of the tas and jobs ones.
const (
	EnvOutput    = "TAS_OUTPUT"
	EnvLogLevel  = "TAS_LOG_LEVEL"
	EnvLogFormat = "TAS_LOG_FORMAT"
	EnvNamespace = "TAS_DIRECTORY_NAMESPACE"
)

// DefaultEnvFile is loaded when present unless --env-file names another.
const DefaultEnvFile = ".env"

// Config holds the settings of the tas command.
type Config struct {
	TAS                tas.Config
	Jobs               jobs.Config
	DirectoryNamespace string
	Output             string
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.TAS = tas.Config{BaseURL: tas.DefaultBaseURL}
	c.Jobs = jobs.Config{BaseURL: tas.DefaultBaseURL}
	c.DirectoryNamespace = ""
	c.Output = OutputJSON
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatZap
}

// Load builds a Config from defaults, then the .env file and environment,
// then the file named by -c/--config in args. Command-line flags are applied
// afterwards by the command tree.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	envFile := flagx.EnvFilePath(args)
	required := envFile != ""
	if !required {
		envFile = DefaultEnvFile
	}
	if err := loadEnvFile(envFile, required); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if path := flagx.ConfigPath(args); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadEnvFile exports the variables in path without overriding ones already
// set. A missing default file is not an error.
func loadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.TAS.BaseURL, tas.EnvURL)
	set(&c.TAS.Credentials.Username, tas.EnvClientKey)
	set(&c.TAS.Credentials.Secret, tas.EnvClientSecret)
	set(&c.Jobs.BaseURL, jobs.EnvURL)
	set(&c.Jobs.Credentials.Username, jobs.EnvUser)
	set(&c.Jobs.Credentials.Secret, jobs.EnvPassword)
	set(&c.DirectoryNamespace, EnvNamespace)
	set(&c.Output, EnvOutput)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.LogFormat, EnvLogFormat)
}

// Validate checks the settings that are not validated by the clients
// themselves.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputJSON, OutputYAML, c.Output)
	}
	switch c.LogFormat {
	case logging.FormatZap, logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be %q, %q or %q, got %q",
			logging.FormatZap, logging.FormatText, logging.FormatJSON, c.LogFormat)
	}
	return nil
}
