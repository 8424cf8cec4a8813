package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL  = "https://backend-app-djuy.onrender.com/api/v1"
	defaultHTTPTimeout = 20 * time.Second
)

// Config holds runtime settings for the admin client.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	DBPath      string        `yaml:"db_path"`
	LogPath     string        `yaml:"log_path"`
	LogLevel    string        `yaml:"log_level"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// LoadFromEnv reads the optional YAML file named by REACHON_CONFIG first and
// lets REACHON_* variables override it.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if path := os.Getenv("REACHON_CONFIG"); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	overrideString(&cfg.APIBaseURL, "REACHON_API_BASE_URL")
	overrideString(&cfg.DBPath, "REACHON_DB_PATH")
	overrideString(&cfg.LogPath, "REACHON_LOG_PATH")
	overrideString(&cfg.LogLevel, "REACHON_LOG_LEVEL")
	if raw := os.Getenv("REACHON_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("REACHON_HTTP_TIMEOUT must be a duration: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML config file. Missing keys stay zero.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.DBPath == "" {
		c.DBPath = "reachon-admin.db"
	}
	if c.LogPath == "" {
		c.LogPath = "reachon-admin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.LogPath == "" {
		return errors.New("LogPath is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive: %s", c.HTTPTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
