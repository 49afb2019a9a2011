package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of a config file, JSON or YAML. Empty
// values leave the current setting alone.
type fileConfig struct {
	TASURL             string `json:"tas_url" yaml:"tas_url"`
	TASClientKey       string `json:"tas_client_key" yaml:"tas_client_key"`
	TASClientSecret    string `json:"tas_client_secret" yaml:"tas_client_secret"`
	JobsURL            string `json:"jobs_url" yaml:"jobs_url"`
	JobsUser           string `json:"jobs_user" yaml:"jobs_user"`
	JobsPassword       string `json:"jobs_password" yaml:"jobs_password"`
	DirectoryNamespace string `json:"directory_namespace" yaml:"directory_namespace"`
	Output             string `json:"output" yaml:"output"`
	LogLevel           string `json:"log_level" yaml:"log_level"`
	LogFormat          string `json:"log_format" yaml:"log_format"`
}

// applyFile overlays c with the file at path. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.TAS.BaseURL, fc.TASURL)
	set(&c.TAS.Credentials.Username, fc.TASClientKey)
	set(&c.TAS.Credentials.Secret, fc.TASClientSecret)
	set(&c.Jobs.BaseURL, fc.JobsURL)
	set(&c.Jobs.Credentials.Username, fc.JobsUser)
	set(&c.Jobs.Credentials.Secret, fc.JobsPassword)
	set(&c.DirectoryNamespace, fc.DirectoryNamespace)
	set(&c.Output, fc.Output)
	set(&c.LogLevel, fc.LogLevel)
	set(&c.LogFormat, fc.LogFormat)
	return nil
}
