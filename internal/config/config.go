package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings of one partysync session.
type Config struct {
	PlayerID    uint64
	Coordinator string
	LogPath     string
	LogLevel    string
	Tick        time.Duration
	Poll        time.Duration
	Coalesce    time.Duration
	MinSend     time.Duration
	MetricsBind string
}

const (
	defaultConfigPath  = "~/.config/partysync/config.toml"
	defaultLogPath     = "~/.local/share/partysync/partysync.log"
	defaultCoordinator = "http://127.0.0.1:7600"
	defaultLogLevel    = "info"
	defaultTickMS      = 100
	defaultPollMS      = 1000
	defaultCoalesceMS  = 2000
	defaultMinSendMS   = 500
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Coordinator: defaultCoordinator,
		LogPath:     mustExpand(defaultLogPath),
		LogLevel:    defaultLogLevel,
		Tick:        defaultTickMS * time.Millisecond,
		Poll:        defaultPollMS * time.Millisecond,
		Coalesce:    defaultCoalesceMS * time.Millisecond,
		MinSend:     defaultMinSendMS * time.Millisecond,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PlayerID    uint64 `toml:"player_id"`
		Coordinator string `toml:"coordinator"`
		LogPath     string `toml:"log_path"`
		LogLevel    string `toml:"log_level"`
		TickMS      int64  `toml:"tick_ms"`
		PollMS      int64  `toml:"poll_ms"`
		CoalesceMS  int64  `toml:"coalesce_ms"`
		MinSendMS   int64  `toml:"min_send_ms"`
		MetricsBind string `toml:"metrics_bind"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.PlayerID = raw.PlayerID
	if v := strings.TrimSpace(raw.Coordinator); v != "" {
		cfg.Coordinator = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.Tick = millis(raw.TickMS, cfg.Tick)
	cfg.Poll = millis(raw.PollMS, cfg.Poll)
	cfg.Coalesce = millis(raw.CoalesceMS, cfg.Coalesce)
	cfg.MinSend = millis(raw.MinSendMS, cfg.MinSend)
	cfg.MetricsBind = strings.TrimSpace(raw.MetricsBind)

	return cfg, nil
}

// Validate reports settings a session cannot start with.
func (c Config) Validate() error {
	if c.PlayerID == 0 {
		return errors.New("player_id is required")
	}
	u, err := url.Parse(c.Coordinator)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("coordinator %q is not an http(s) URL", c.Coordinator)
	}
	return nil
}

// DefaultPrefsPath returns the preferences file next to the default config.
func DefaultPrefsPath() string {
	return filepath.Join(filepath.Dir(mustExpand(defaultConfigPath)), "prefs.toml")
}

func millis(ms int64, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
