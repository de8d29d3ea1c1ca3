package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Service is one server's connection settings. Username is optional; when
// set it pre-fills the login form.
type Service struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
}

// Finance extends the connection settings with the dashboard's default
// chart window in months.
type Finance struct {
	Service
	Months int `toml:"months"`
}

// Config carries the server addresses and login identities for the three
// satchel applications.
type Config struct {
	Mail    Service `toml:"mail"`
	Feed    Service `toml:"feed"`
	Finance Finance `toml:"finance"`
}

const (
	defaultConfigPath  = "~/.config/satchel/config.toml"
	defaultMailBase    = "127.0.0.1:8000"
	defaultFeedBase    = "127.0.0.1:8001"
	defaultFinanceBase = "127.0.0.1:8002"
	defaultMonths      = 6
)

// Load locates and parses the satchel config, falling back to defaults when
// the file is missing. Blank fields take their defaults; the months window
// is clamped to what the finance server accepts.
func Load(path string) (Config, error) {
	resolved, err := resolve(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parsed Config
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Mail = normalizeService(parsed.Mail, defaultMailBase)
	cfg.Feed = normalizeService(parsed.Feed, defaultFeedBase)
	cfg.Finance.Service = normalizeService(parsed.Finance.Service, defaultFinanceBase)
	cfg.Finance.Months = clampMonths(parsed.Finance.Months)

	return cfg, nil
}

func defaults() Config {
	return Config{
		Mail:    Service{BaseURL: defaultMailBase},
		Feed:    Service{BaseURL: defaultFeedBase},
		Finance: Finance{Service: Service{BaseURL: defaultFinanceBase}, Months: defaultMonths},
	}
}

func normalizeService(s Service, defaultBase string) Service {
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	if s.BaseURL == "" {
		s.BaseURL = defaultBase
	}
	s.Username = strings.TrimSpace(s.Username)
	return s
}

// clampMonths keeps the window inside the 1..12 range the finance server
// accepts; zero (unset) takes the default.
func clampMonths(months int) int {
	switch {
	case months == 0:
		return defaultMonths
	case months < 1:
		return 1
	case months > 12:
		return 12
	default:
		return months
	}
}

// resolve substitutes the default for an empty path and expands a leading ~.
func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultConfigPath
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
