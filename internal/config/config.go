package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
	Export  ExportConfig  `yaml:"export"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// APIKey, when set, must be sent as X-API-Key on every /api/v1 request.
	APIKey string `yaml:"api_key"`
	// AllowedOrigins are browser origins (scheme://host[:port]) that may call
	// the API cross-origin. Same-origin callers never need listing.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type StorageConfig struct {
	Path          string `yaml:"path"`
	Key           string `yaml:"key"`
	MaxValueBytes int    `yaml:"max_value_bytes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	Stdout bool   `yaml:"stdout"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultStorageKey is the key the plan document is stored under.
const DefaultStorageKey = "workoutPlan"

// DefaultMaxValueBytes mirrors the per-origin budget of browser local storage.
const DefaultMaxValueBytes = 5 << 20

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	path := filepath.Join(".workoutplan", "plan.db")
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, path)
	}
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8090},
		Storage: StorageConfig{Path: path, Key: DefaultStorageKey, MaxValueBytes: DefaultMaxValueBytes},
		Log:     LogConfig{Level: "info", Format: "text", Stdout: true},
		Metrics: MetricsConfig{Enabled: true},
		MCP:     MCPConfig{Enabled: true},
		Export:  ExportConfig{Dir: "."},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. Env vars use the prefix WORKOUTPLAN_:
//
//	WORKOUTPLAN_SERVER_HOST, WORKOUTPLAN_SERVER_PORT, WORKOUTPLAN_API_KEY,
//	WORKOUTPLAN_ALLOWED_ORIGINS (comma-separated),
//	WORKOUTPLAN_STORAGE_PATH, WORKOUTPLAN_STORAGE_KEY, WORKOUTPLAN_STORAGE_MAX_VALUE_BYTES,
//	WORKOUTPLAN_LOG_LEVEL, WORKOUTPLAN_LOG_FORMAT, WORKOUTPLAN_LOG_FILE,
//	WORKOUTPLAN_METRICS_ENABLED, WORKOUTPLAN_MCP_ENABLED, WORKOUTPLAN_EXPORT_DIR
//
// When optional is true a missing file is not an error.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORKOUTPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WORKOUTPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WORKOUTPLAN_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("WORKOUTPLAN_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("WORKOUTPLAN_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("WORKOUTPLAN_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("WORKOUTPLAN_STORAGE_MAX_VALUE_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MaxValueBytes = n
		}
	}
	if v := os.Getenv("WORKOUTPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WORKOUTPLAN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("WORKOUTPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("WORKOUTPLAN_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("WORKOUTPLAN_MCP_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MCP.Enabled = b
		}
	}
	if v := os.Getenv("WORKOUTPLAN_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for _, o := range c.Server.AllowedOrigins {
		if o == "*" {
			return fmt.Errorf("server.allowed_origins: wildcard origin is not supported")
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("server.allowed_origins: %q is not scheme://host", o)
		}
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.Storage.MaxValueBytes <= 0 {
		return fmt.Errorf("storage.max_value_bytes must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
