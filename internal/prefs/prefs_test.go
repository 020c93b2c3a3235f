package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsFallback(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	got, err := store.Load(Prefs{Theme: ThemeLight})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != ThemeLight {
		t.Fatalf("expected fallback theme, got %q", got.Theme)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	store := NewStore(path)
	if err := store.Save(Prefs{Theme: ThemeDark}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}
	got, err := store.Load(Prefs{Theme: ThemeLight})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != ThemeDark {
		t.Fatalf("expected dark theme, got %q", got.Theme)
	}
}

func TestLoadUnknownThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("theme: neon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewStore(path).Load(Prefs{Theme: ThemeLight})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != ThemeLight {
		t.Fatalf("expected fallback theme, got %q", got.Theme)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewStore(path).Load(Prefs{Theme: ThemeDark})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if got.Theme != ThemeDark {
		t.Fatalf("expected fallback on error, got %q", got.Theme)
	}
}

func TestEmptyPathDisablesPersistence(t *testing.T) {
	store := NewStore("  ")
	if err := store.Save(Prefs{Theme: ThemeDark}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(Prefs{Theme: ThemeLight})
	if err != nil || got.Theme != ThemeLight {
		t.Fatalf("expected fallback, got %q %v", got.Theme, err)
	}
}

func TestParseThemeAndToggle(t *testing.T) {
	theme, err := ParseTheme(" DARK ")
	if err != nil || theme != ThemeDark {
		t.Fatalf("expected dark, got %q %v", theme, err)
	}
	if theme.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Fatal("toggle did not flip theme")
	}
	if _, err := ParseTheme("sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}
