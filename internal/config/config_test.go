package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/taskflow.db", "/tmp/taskflow.log")
	if cfg.Server.BaseURL != DefaultServerURL || cfg.Server.TimeoutSeconds != 5 {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.UI.Theme != "nord" {
		t.Fatalf("unexpected theme %q", cfg.UI.Theme)
	}
	if cfg.Notify.Desktop {
		t.Fatal("desktop notifications should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/taskflow.db", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != defaults {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
base_url = "https://tasks.example.com"
timeout_seconds = 10

[ui]
theme = "dracula"

[notify]
desktop = true

[logging]
level = "debug"
`)
	cfg, err := Load(path, Default("/tmp/taskflow.db", "/tmp/taskflow.log"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.BaseURL != "https://tasks.example.com" || cfg.Server.TimeoutSeconds != 10 {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.UI.Theme != "dracula" || !cfg.Notify.Desktop || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Logging.File != "/tmp/taskflow.log" || cfg.DevServer.Addr != ":8080" {
		t.Fatal("untouched sections should keep defaults")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad url":     "[server]\nbase_url = \"localhost\"\n",
		"negative":    "[server]\ntimeout_seconds = -1\n",
		"bad level":   "[logging]\nlevel = \"loud\"\n",
		"empty addr":  "[devserver]\naddr = \"\"\n",
		"broken toml": "[server\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content), Default("/tmp/taskflow.db", ""))
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvServerURL: " http://10.0.0.2:9000 "}
	cfg := Default("/tmp/taskflow.db", "").ApplyEnv(func(k string) string { return env[k] })
	if cfg.Server.BaseURL != "http://10.0.0.2:9000" {
		t.Fatalf("base url = %q", cfg.Server.BaseURL)
	}

	cfg = Default("/tmp/taskflow.db", "").ApplyEnv(func(string) string { return "" })
	if cfg.Server.BaseURL != DefaultServerURL {
		t.Fatalf("empty env should not override, got %q", cfg.Server.BaseURL)
	}
}

func TestResolvePath(t *testing.T) {
	env := map[string]string{EnvConfigPath: "/env/config.toml"}
	getenv := func(k string) string { return env[k] }

	if got := ResolvePath("/flag.toml", getenv, "/default.toml"); got != "/flag.toml" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := ResolvePath("", getenv, "/default.toml"); got != "/env/config.toml" {
		t.Errorf("env should beat default, got %q", got)
	}
	if got := ResolvePath("", nil, "/default.toml"); got != "/default.toml" {
		t.Errorf("got %q", got)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err = %v", err)
	}
	if !strings.HasSuffix(filepath.Dir(path), "dir") {
		t.Fatal("unexpected dir")
	}
}
