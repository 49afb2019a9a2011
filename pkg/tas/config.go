package tas

import (
	"net/url"
	"os"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL          = "TAS_URL"
	EnvClientKey    = "TAS_CLIENT_KEY"
	EnvClientSecret = "TAS_CLIENT_SECRET"
)

// DefaultBaseURL is used when TAS_URL is not set.
const DefaultBaseURL = "https://example.com/api"

// Credentials are the service account used for HTTP Basic auth on every call.
type Credentials struct {
	Username string
	Secret   string
}

// Config is everything a Client needs. It is read once, at construction.
type Config struct {
	BaseURL     string
	Credentials Credentials
}

// ConfigFromEnv reads TAS_URL, TAS_CLIENT_KEY and TAS_CLIENT_SECRET.
func ConfigFromEnv() Config {
	return Config{
		BaseURL: getEnv(EnvURL, DefaultBaseURL),
		Credentials: Credentials{
			Username: os.Getenv(EnvClientKey),
			Secret:   os.Getenv(EnvClientSecret),
		},
	}
}

// Validate checks that the base URL is an absolute http(s) URL.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return invalidArgf("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return invalidArgf("base URL %q: %v", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidArgf("base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return invalidArgf("base URL %q: host is required", c.BaseURL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func trimBase(u string) string {
	return strings.TrimRight(u, "/")
}
