// Package app provides the orchestration layer for the satchel application.
//
// # Overview
//
// This package wires together configuration, the three API clients, and the
// UI to create the complete satchel TUI experience. It serves as the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load satchel configuration from ~/.config/satchel/config.toml
//  2. Load user preferences (theme) from ~/.config/satchel/prefs.toml
//  3. Initialize one HTTP client per course server (mail, feed, finance)
//  4. Start the TUI on the requested screen and block until the user exits
//     or the context cancels
//
// All data loading is user-triggered: a screen fetches when it is entered,
// when its filter changes, or after one of its mutations. There is no
// background polling, so a client that cannot reach its server only surfaces
// the failure when its screen is opened.
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Client initialization failure (malformed base URL)
//
// Recoverable errors (shown in the UI, never fatal):
//   - A server that is down or unreachable
//   - Expired sessions (the UI reopens the login form)
//   - Failed loads and mutations
//
// A missing config file is not an error; every server has a localhost
// default matching the course projects' development ports.
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: path to config.toml (default: ~/.config/satchel/config.toml)
//   - PrefsPath: path to prefs.toml (default: ~/.config/satchel/prefs.toml)
//   - Start: which client to open into (default: the home menu)
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT)
//	defer cancel()
//
//	opts := app.Options{
//		ConfigPath: "", // use default
//		Start:      app.StartMail,
//	}
//
//	if err := app.Run(ctx, opts); err != nil {
//		log.Fatalf("satchel failed: %v", err)
//	}
package app
