// Package prefs handles partysync user preferences persistence.
// Preferences are stored in ~/.config/partysync/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/partysync/internal/party"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme           string `toml:"theme"`
	JoinRequestMode string `toml:"join_request_mode"`
	IgnoreInvites   bool   `toml:"ignore_invites"`
}

const (
	defaultPrefsPath = "~/.config/partysync/prefs.toml"
	defaultTheme     = "Nightfox"
)

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, JoinRequestMode: party.OpenToFriends.String()}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}

	prefs := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults(), nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if _, err := party.ParseJoinRequestMode(prefs.JoinRequestMode); err != nil {
		prefs.JoinRequestMode = party.OpenToFriends.String()
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store is a party.PreferenceStore that writes the file on every change.
type Store struct {
	path string

	mu    sync.Mutex
	prefs Prefs
}

var _ party.PreferenceStore = (*Store)(nil)

// Open loads the preferences at path into a Store.
func Open(path string) *Store {
	p, _ := Load(path)
	return &Store{path: path, prefs: p}
}

// Prefs returns a copy of the current preferences.
func (s *Store) Prefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *Store) JoinRequestMode() party.JoinRequestMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode, err := party.ParseJoinRequestMode(s.prefs.JoinRequestMode)
	if err != nil {
		return party.OpenToFriends
	}
	return mode
}

func (s *Store) IgnoreInvites() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.IgnoreInvites
}

func (s *Store) SetJoinRequestMode(mode party.JoinRequestMode) error {
	return s.update(func(p *Prefs) { p.JoinRequestMode = mode.String() })
}

func (s *Store) SetIgnoreInvites(ignore bool) error {
	return s.update(func(p *Prefs) { p.IgnoreInvites = ignore })
}

// SetTheme stores the UI theme name.
func (s *Store) SetTheme(theme string) error {
	return s.update(func(p *Prefs) { p.Theme = theme })
}

// update applies fn and saves. The in-memory value is only changed when the
// write succeeds.
func (s *Store) update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.prefs
	fn(&next)
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
