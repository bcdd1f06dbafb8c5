// Package config loads sqlgrep.yaml and overlays environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig selects the database and how to authenticate to it.
// Secrets are read from the environment only.
type ConnectionConfig struct {
	DatabaseURL       string `yaml:"database_url" env:"SQLGREP_DATABASE_URL,DATABASE_URL"`
	AuthMethod        string `yaml:"auth_method,omitempty" env:"SQLGREP_AUTH"`
	AWSRegion         string `yaml:"aws_region,omitempty" env:"AWS_REGION,AWS_DEFAULT_REGION"`
	AzureTenantID     string `yaml:"azure_tenant_id,omitempty" env:"AZURE_TENANT_ID"`
	AzureClientID     string `yaml:"azure_client_id,omitempty" env:"AZURE_CLIENT_ID"`
	AzureClientSecret string `yaml:"-" env:"AZURE_CLIENT_SECRET"`
	GoogleInstance    string `yaml:"google_instance,omitempty" env:"SQLGREP_GOOGLE_INSTANCE"`
}

// SearchConfig holds defaults for matching. A flag can only turn an option on.
type SearchConfig struct {
	IgnoreCase        bool `yaml:"ignore_case"`
	FixedStrings      bool `yaml:"fixed_strings"`
	WholeString       bool `yaml:"whole_string"`
	IgnoreNonReadOnly bool `yaml:"ignore_non_read_only"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Search     SearchConfig     `yaml:"search"`
	Color      string           `yaml:"color" env:"SQLGREP_COLOR"`
	Timeout    string           `yaml:"timeout" env:"SQLGREP_TIMEOUT"`
}

const ConfigFileName = "sqlgrep.yaml"

// Load reads sqlgrep.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadWithEnv loads .env into the process environment, then the project
// config at path (an empty path means ./sqlgrep.yaml, which may be absent),
// then overlays environment variables on top.
func LoadWithEnv(path string) (*ProjectConfig, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	cfg, err := LoadFile(path)
	switch {
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		cfg = &ProjectConfig{}
	case err != nil:
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// TimeoutDuration parses Timeout. An empty value means no limit.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
