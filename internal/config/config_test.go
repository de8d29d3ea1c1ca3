package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mail.BaseURL != defaultMailBase {
		t.Fatalf("Mail.BaseURL = %q, want %q", cfg.Mail.BaseURL, defaultMailBase)
	}
	if cfg.Feed.BaseURL != defaultFeedBase {
		t.Fatalf("Feed.BaseURL = %q, want %q", cfg.Feed.BaseURL, defaultFeedBase)
	}
	if cfg.Finance.BaseURL != defaultFinanceBase {
		t.Fatalf("Finance.BaseURL = %q, want %q", cfg.Finance.BaseURL, defaultFinanceBase)
	}
	if cfg.Finance.Months != defaultMonths {
		t.Fatalf("Finance.Months = %d, want %d", cfg.Finance.Months, defaultMonths)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[mail]
base_url = "  10.0.0.5:9000  "
username = "  alice  "

[feed]
base_url = "feed.example.com:9001"

[finance]
base_url = "https://money.example.com"
months = 3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mail.BaseURL != "10.0.0.5:9000" {
		t.Fatalf("Mail.BaseURL = %q, want trimmed address", cfg.Mail.BaseURL)
	}
	if cfg.Mail.Username != "alice" {
		t.Fatalf("Mail.Username = %q, want %q", cfg.Mail.Username, "alice")
	}
	if cfg.Feed.BaseURL != "feed.example.com:9001" {
		t.Fatalf("Feed.BaseURL = %q, want configured address", cfg.Feed.BaseURL)
	}
	if cfg.Finance.BaseURL != "https://money.example.com" {
		t.Fatalf("Finance.BaseURL = %q, want configured address", cfg.Finance.BaseURL)
	}
	if cfg.Finance.Months != 3 {
		t.Fatalf("Finance.Months = %d, want 3", cfg.Finance.Months)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[mail]
base_url = "   "

[finance]
months = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mail.BaseURL != defaultMailBase {
		t.Fatalf("Mail.BaseURL = %q, want %q", cfg.Mail.BaseURL, defaultMailBase)
	}
	if cfg.Finance.Months != defaultMonths {
		t.Fatalf("Finance.Months = %d, want %d", cfg.Finance.Months, defaultMonths)
	}
}

func TestLoad_ClampsMonthsWindow(t *testing.T) {
	tests := []struct {
		name   string
		months string
		want   int
	}{
		{"too small", "-2", 1},
		{"too large", "48", 12},
		{"in range", "9", 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			body := "[finance]\nmonths = " + tc.months + "\n"
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Finance.Months != tc.want {
				t.Fatalf("Finance.Months = %d, want %d", cfg.Finance.Months, tc.want)
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`[mail`), 0o600); err != nil {
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

func TestResolve_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolve("~/a/b")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("resolve = %q, want %q", got, want)
	}
}

func TestResolve_EmptyUsesDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolve("   ")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	want := filepath.Join(home, ".config", "satchel", "config.toml")
	if got != want {
		t.Fatalf("resolve = %q, want %q", got, want)
	}
}
