package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if time.Duration(cfg.Session.LoginDelay) != time.Second {
		t.Errorf("login delay = %v, want 1s", time.Duration(cfg.Session.LoginDelay))
	}
	if cfg.Notifications.Max != 50 {
		t.Errorf("max = %d, want 50", cfg.Notifications.Max)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "storage:\n  backend: memory\nsession:\n  login_delay: 250ms\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", cfg.Storage.Backend)
	}
	if time.Duration(cfg.Session.LoginDelay) != 250*time.Millisecond {
		t.Errorf("login delay = %v, want 250ms", time.Duration(cfg.Session.LoginDelay))
	}
	if time.Duration(cfg.Notifications.CompletionWindow) != time.Hour {
		t.Errorf("completion window = %v, want default 1h", time.Duration(cfg.Notifications.CompletionWindow))
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want default warn", cfg.Log.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backend", "storage:\n  backend: postgres\n"},
		{"bad dedup", "notifications:\n  dedup: fuzzy\n"},
		{"bad duration", "session:\n  login_delay: soon\n"},
		{"zero max", "notifications:\n  max: 0\n"},
		{"not yaml", "storage: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(dir); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	cfg := Default()
	cfg.Storage.Backend = BackendRedis
	cfg.Notifications.Dedup = "title"
	cfg.Session.LoginDelay = Duration(0)

	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if want := "completion_window: 1h0m0s"; !strings.Contains(string(data), want) {
		t.Errorf("saved config missing %q:\n%s", want, data)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestHomeDir_EnvOverride(t *testing.T) {
	t.Setenv(HomeEnv, "/tmp/mctl")

	dir, err := HomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/mctl" {
		t.Errorf("HomeDir = %q, want /tmp/mctl", dir)
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := Default()
	if got := cfg.SQLitePath("/h"); got != filepath.Join("/h", "missionctl.db") {
		t.Errorf("default path = %q", got)
	}
	cfg.Storage.Path = "/data/x.db"
	if got := cfg.SQLitePath("/h"); got != "/data/x.db" {
		t.Errorf("explicit path = %q", got)
	}
}
