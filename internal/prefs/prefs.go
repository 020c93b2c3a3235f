package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTheme = errors.New("prefs: invalid theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Prefs is the set of values remembered between sessions.
type Prefs struct {
	Theme Theme `yaml:"theme"`
}

// Store reads and writes Prefs as a small YAML file. An empty path disables
// persistence.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: strings.TrimSpace(path)}
}

func (s *Store) Path() string { return s.path }

// Load returns fallback when the file is missing or empty. An unknown theme in
// the file is replaced by fallback's theme.
func (s *Store) Load(fallback Prefs) (Prefs, error) {
	if s.path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fallback, nil
		}
		return fallback, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fallback, nil
	}
	var out Prefs
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return fallback, fmt.Errorf("prefs: parse %s: %w", s.path, err)
	}
	if theme, err := ParseTheme(string(out.Theme)); err == nil {
		out.Theme = theme
	} else {
		out.Theme = fallback.Theme
	}
	return out, nil
}

func (s *Store) Save(p Prefs) error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
