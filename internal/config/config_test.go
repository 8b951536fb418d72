package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Coordinator != defaultCoordinator {
		t.Fatalf("Coordinator = %q, want %q", cfg.Coordinator, defaultCoordinator)
	}
	wantLog, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.LogPath != wantLog {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, wantLog)
	}
	if cfg.Tick != 100*time.Millisecond || cfg.Coalesce != 2*time.Second || cfg.MinSend != 500*time.Millisecond {
		t.Fatalf("durations = %v/%v/%v, want defaults", cfg.Tick, cfg.Coalesce, cfg.MinSend)
	}
	if cfg.MetricsBind != "" {
		t.Fatalf("MetricsBind = %q, want empty", cfg.MetricsBind)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate returned nil error without player_id")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
player_id = 42
coordinator = "  https://mm.example.net/  "
log_path = "  ~/logs/party.log  "
log_level = "DEBUG"
tick_ms = 50
poll_ms = 250
coalesce_ms = 1500
min_send_ms = 300
metrics_bind = " 127.0.0.1:9464 "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PlayerID != 42 {
		t.Fatalf("PlayerID = %d, want 42", cfg.PlayerID)
	}
	if cfg.Coordinator != "https://mm.example.net" {
		t.Fatalf("Coordinator = %q, want trailing slash trimmed", cfg.Coordinator)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Tick != 50*time.Millisecond || cfg.Poll != 250*time.Millisecond {
		t.Fatalf("Tick/Poll = %v/%v", cfg.Tick, cfg.Poll)
	}
	if cfg.Coalesce != 1500*time.Millisecond || cfg.MinSend != 300*time.Millisecond {
		t.Fatalf("Coalesce/MinSend = %v/%v", cfg.Coalesce, cfg.MinSend)
	}
	if cfg.MetricsBind != "127.0.0.1:9464" {
		t.Fatalf("MetricsBind = %q", cfg.MetricsBind)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
coordinator = "   "
log_path = ""
tick_ms = 0
min_send_ms = -5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`player_id = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestValidate_RejectsBadCoordinator(t *testing.T) {
	for _, coordinator := range []string{"", "127.0.0.1:7600", "ftp://host", "http://"} {
		cfg := Default()
		cfg.PlayerID = 1
		cfg.Coordinator = coordinator
		if err := cfg.Validate(); err == nil {
			t.Fatalf("Validate(%q) returned nil error", coordinator)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDefaultPrefsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := DefaultPrefsPath()
	want := filepath.Join(home, ".config", "partysync", "prefs.toml")
	if got != want {
		t.Fatalf("DefaultPrefsPath = %q, want %q", got, want)
	}
}
