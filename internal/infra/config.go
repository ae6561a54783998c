package infra

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full poolwatch configuration. Secrets may be left
// out of the file and injected through environment variables instead.
type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		AuthHeader string `yaml:"auth_header"`
		TimeoutSec int    `yaml:"timeout_sec"`
		SocksProxy string `yaml:"socks_proxy"`
	} `yaml:"api"`

	Monitor struct {
		PollIntervalSec int    `yaml:"poll_interval_sec"`
		ListenAddr      string `yaml:"listen_addr"`
	} `yaml:"monitor"`

	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the yaml config file, applies
// environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	overrideWithEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv lets environment variables win over the file so the
// API key can stay out of version-controlled configs.
func overrideWithEnv(cfg *Config) {
	if key := os.Getenv("BRAIINS_API_KEY"); key != "" {
		cfg.API.APIKey = key
	}
	if proxy := os.Getenv("BRAIINS_SOCKS_PROXY"); proxy != "" {
		cfg.API.SocksProxy = proxy
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Monitor.PollIntervalSec == 0 {
		cfg.Monitor.PollIntervalSec = 60
	}
	if cfg.Monitor.ListenAddr == "" {
		cfg.Monitor.ListenAddr = "127.0.0.1:8720"
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "poolwatch.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.API.APIKey == "" {
		return fmt.Errorf("api.api_key is required (or set BRAIINS_API_KEY)")
	}
	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("api.timeout_sec must not be negative")
	}
	if c.Monitor.PollIntervalSec <= 0 {
		return fmt.Errorf("monitor.poll_interval_sec must be positive")
	}
	return nil
}

// Timeout returns the configured request timeout, zero when unset so
// the client default applies.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// PollInterval returns the configured polling period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Monitor.PollIntervalSec) * time.Second
}
