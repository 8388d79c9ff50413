package platform

import (
	"path/filepath"
	"testing"
)

func TestPathsForLinuxWithXDG(t *testing.T) {
	p, err := PathsFor("linux", map[string]string{
		"XDG_CONFIG_HOME": "/xdg/config",
		"XDG_DATA_HOME":   "/xdg/data",
	}, "/fallback/config", "/fallback/data", "taskflow")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if want := filepath.Join("/xdg/config", "taskflow", "config.toml"); p.ConfigPath != want {
		t.Errorf("config path = %q, want %q", p.ConfigPath, want)
	}
	if want := filepath.Join("/xdg/data", "taskflow", "taskflow.db"); p.DBPath != want {
		t.Errorf("db path = %q, want %q", p.DBPath, want)
	}
	if want := filepath.Join("/xdg/data", "taskflow", "taskflow.lock"); p.LockPath != want {
		t.Errorf("lock path = %q, want %q", p.LockPath, want)
	}
}

func TestPathsForLinuxFallbackWithoutXDG(t *testing.T) {
	p, err := PathsFor("linux", map[string]string{}, "/home/me/.config", "/home/me/.local/share", "taskflow")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if want := filepath.Join("/home/me/.config", "taskflow", "config.toml"); p.ConfigPath != want {
		t.Errorf("config path = %q", p.ConfigPath)
	}
	if want := filepath.Join("/home/me/.local/share", "taskflow", "taskflow.log"); p.LogPath != want {
		t.Errorf("log path = %q", p.LogPath)
	}
}

func TestPathsForWindowsUsesAppData(t *testing.T) {
	p, err := PathsFor("windows", map[string]string{
		"APPDATA":      `C:\Users\me\AppData\Roaming`,
		"LOCALAPPDATA": `C:\Users\me\AppData\Local`,
	}, `C:\fallback\config`, `C:\fallback\data`, "taskflow")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if want := filepath.Join(`C:\Users\me\AppData\Local`, "taskflow"); p.DataDir != want {
		t.Errorf("data dir = %q, want %q", p.DataDir, want)
	}
}

func TestPathsForRejectsEmptyInputs(t *testing.T) {
	if _, err := PathsFor("darwin", nil, "", "/tmp/data", "taskflow"); err == nil {
		t.Error("expected error for empty config dir")
	}
	if _, err := PathsFor("linux", nil, "/cfg", "/data", "  "); err == nil {
		t.Error("expected error for empty app name")
	}
}

func TestDefaultPathsSmoke(t *testing.T) {
	p, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths() error = %v", err)
	}
	if p.ConfigPath == "" || p.DBPath == "" || p.DataDir == "" || p.LockPath == "" {
		t.Fatalf("expected non-empty paths, got %#v", p)
	}
}
