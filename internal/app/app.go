package app

import (
	"context"
	"fmt"

	"satchel/internal/api"
	"satchel/internal/config"
	"satchel/internal/prefs"
	"satchel/internal/ui"
)

// Start selects which client satchel opens into.
const (
	StartHome    = ""
	StartMail    = "mail"
	StartFeed    = "feed"
	StartFinance = "finance"
)

// Options configure the satchel application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/satchel/config.toml
	PrefsPath  string // empty uses default ~/.config/satchel/prefs.toml
	Start      string // one of the Start constants
}

// Run boots the satchel TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load satchel config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	mail, err := api.NewMail(cfg.Mail.BaseURL)
	if err != nil {
		return fmt.Errorf("init mail client: %w", err)
	}

	feed, err := api.NewFeed(cfg.Feed.BaseURL)
	if err != nil {
		return fmt.Errorf("init feed client: %w", err)
	}

	finance, err := api.NewFinance(cfg.Finance.BaseURL)
	if err != nil {
		return fmt.Errorf("init finance client: %w", err)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Mail:      mail,
		Feed:      feed,
		Finance:   finance,
		Config:    cfg,
		Screen:    startScreen(opts.Start),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

func startScreen(start string) ui.Screen {
	switch start {
	case StartMail:
		return ui.ScreenMailbox
	case StartFeed:
		return ui.ScreenFeed
	case StartFinance:
		return ui.ScreenFinance
	default:
		return ui.ScreenHome
	}
}
