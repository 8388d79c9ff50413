package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables consulted by ApplyEnv and ResolvePath
const (
	EnvConfigPath = "TASKFLOW_CONFIG"
	EnvServerURL  = "TASKFLOW_SERVER"
)

// DefaultServerURL is where the client looks for a backend when nothing else is configured.
const DefaultServerURL = "http://localhost:8080"

type Config struct {
	Server    ServerConfig    `toml:"server"`
	UI        UIConfig        `toml:"ui"`
	Notify    NotifyConfig    `toml:"notify"`
	Logging   LoggingConfig   `toml:"logging"`
	DevServer DevServerConfig `toml:"devserver"`
}

type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type UIConfig struct {
	Theme string `toml:"theme"`
}

type NotifyConfig struct {
	Desktop bool `toml:"desktop"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
	File  string `toml:"file"`  // empty disables the file sink
}

type DevServerConfig struct {
	Addr   string `toml:"addr"`
	DBPath string `toml:"db_path"`
}

// Default returns the built-in configuration. dbPath and logPath come from platform.Paths.
func Default(dbPath, logPath string) Config {
	return Config{
		Server: ServerConfig{
			BaseURL:        DefaultServerURL,
			TimeoutSeconds: 5,
		},
		UI: UIConfig{
			Theme: "nord",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logPath,
		},
		DevServer: DevServerConfig{
			Addr:   ":8080",
			DBPath: dbPath,
		},
	}
}

// Load reads path over defaults. A missing or empty file yields the defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv lets TASKFLOW_SERVER override the configured backend.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if getenv == nil {
		return c
	}
	if v := strings.TrimSpace(getenv(EnvServerURL)); v != "" {
		c.Server.BaseURL = v
	}
	return c
}

// ResolvePath picks the config file: the flag wins, then TASKFLOW_CONFIG, then the platform default.
func ResolvePath(flagValue string, getenv func(string) string, fallback string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if getenv != nil {
		if v := strings.TrimSpace(getenv(EnvConfigPath)); v != "" {
			return v
		}
	}
	return fallback
}

func (c Config) Validate() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base == "" {
		return errors.New("server.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.base_url: %q", c.Server.BaseURL)
	}
	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeout_seconds must be >= 0, got %d", c.Server.TimeoutSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if strings.TrimSpace(c.DevServer.Addr) == "" {
		return errors.New("devserver.addr is required")
	}
	if strings.TrimSpace(c.DevServer.DBPath) == "" {
		return errors.New("devserver.db_path is required")
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
