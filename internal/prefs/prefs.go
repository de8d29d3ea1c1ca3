// Package prefs persists satchel's runtime-writable preferences, today just
// the active theme. They live apart from the hand-edited config file so
// saving never clobbers it. Stored in ~/.config/satchel/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPath  = "~/.config/satchel/prefs.toml"
	defaultTheme = "Nightfox"
)

// Prefs holds the persisted preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string { return defaultPath }

// Load reads preferences from path. Preferences are cosmetic, so every
// failure (missing file, bad TOML, unreachable home dir) degrades to the
// defaults instead of surfacing an error.
func Load(path string) (Prefs, error) {
	out := Prefs{Theme: defaultTheme}

	resolved, err := resolve(path)
	if err != nil {
		return out, nil
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return out, nil
	}
	if err := toml.Unmarshal(raw, &out); err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}
	if strings.TrimSpace(out.Theme) == "" {
		out.Theme = defaultTheme
	}
	return out, nil
}

// Save writes preferences to path, creating parent directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// resolve substitutes the default for an empty path and expands a leading ~.
func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
