package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string // "" means no file is written
		want    string
	}{
		{"missing file", "", defaultTheme},
		{"explicit theme", "theme = \"Slate\"\n", "Slate"},
		{"empty theme", "theme = \"\"\n", defaultTheme},
		{"whitespace theme", "theme = \"   \"\n", defaultTheme},
		{"invalid toml", "not valid toml {{{\n", defaultTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "prefs.toml")
			if tt.content != "" {
				path = writePrefs(t, dir, tt.content)
			}

			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p.Theme != tt.want {
				t.Fatalf("Theme = %q, want %q", p.Theme, tt.want)
			}
		})
	}
}

func TestLoadDefaultPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "satchel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writePrefs(t, dir, "theme = \"Kanagawa\"\n")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Kanagawa")
	}
}

func TestSaveCreatesDirsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Slate")
	}
}
