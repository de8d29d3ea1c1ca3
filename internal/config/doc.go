// Package config handles loading and parsing the satchel configuration file.
//
// # Overview
//
// Satchel talks to three independent servers (mail, feed, and finance),
// each with its own base address and login identity. This package reads
// those settings from a single TOML file and fills in defaults for anything
// missing, so satchel works out of the box against a local deployment.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config flag), use it
//  2. Otherwise, use ~/.config/satchel/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/satchel/config.toml
//   - Mail server: 127.0.0.1:8000
//   - Feed server: 127.0.0.1:8001
//   - Finance server: 127.0.0.1:8002
//   - Chart window: 6 months
//
// # TOML Format
//
// Example config.toml:
//
//	[mail]
//	base_url = "127.0.0.1:8000"
//	username = "alice"
//
//	[feed]
//	base_url = "127.0.0.1:8001"
//
//	[finance]
//	base_url = "https://money.example.com"
//	months = 6
//
// Every field is optional. base_url accepts host:port (http is assumed) or
// a full URL. username pre-fills the login form; passwords are never stored,
// they are typed into the login screen each session. months is clamped to
// the 1..12 range the finance server accepts.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error.
//
// # Usage Example
//
//	cfg, err := config.Load("") // default path
//	if err != nil {
//		return err
//	}
//	mail, err := api.NewMail(cfg.Mail.BaseURL)
//
// The package is read-only and stateless: configuration is loaded once at
// startup into a plain Config value.
package config
