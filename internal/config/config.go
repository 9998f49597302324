package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Resolver ResolverConfig `yaml:"resolver"`
	Relay    RelayConfig    `yaml:"relay"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT" default:"8731"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	// RequestTimeout bounds one whole request, both network legs included,
	// so stalled upstreams cannot accumulate handlers forever.
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// ResolverConfig holds share-URL resolver configuration.
type ResolverConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"RESOLVER_BASE_URL" default:"https://www.tikwm.com"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"RESOLVER_TIMEOUT" default:"30s"`
	UserAgent string        `yaml:"user_agent" envconfig:"RESOLVER_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
}

// RelayConfig holds upstream media fetch configuration.
type RelayConfig struct {
	// Referer and UserAgent are the identity override sent on the media
	// leg; direct media URLs only authorize requests that look like they
	// came from the platform's own pages.
	Referer               string        `yaml:"referer" envconfig:"RELAY_REFERER" default:"https://www.tiktok.com/"`
	UserAgent             string        `yaml:"user_agent" envconfig:"RELAY_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout" envconfig:"RELAY_RESPONSE_HEADER_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// File, when set, sends logs to a rotated file instead of stdout.
	File       string `yaml:"file" envconfig:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `yaml:"max_backups" envconfig:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" envconfig:"LOG_MAX_AGE_DAYS" default:"28"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Resolver.BaseURL == "" {
		return fmt.Errorf("RESOLVER_BASE_URL is required")
	}
	if c.Relay.Referer == "" {
		return fmt.Errorf("RELAY_REFERER is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
