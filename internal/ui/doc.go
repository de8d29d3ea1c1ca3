// Package ui provides the Bubble Tea terminal interface for satchel.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program built around one root Model. Update
// is a flat switch over message types; each screen contributes its key
// handler, its message handlers, and its render function from a file of its
// own. Screens are not nested tea.Models, so cross-screen flows (a login
// form returning to the screen that demanded it, an archive landing on the
// mailbox it implies) are ordinary field writes on the one Model.
//
// # Package Structure
//
//   - app.go: Model, Options, screen routing, global keys, Run
//   - login.go: the shared username/password form
//   - home.go: service launcher menu
//   - mail.go: mailbox list, email detail, composer
//   - feed.go: post feed, post editor, profile pages
//   - finance.go: dashboard panels and the transactions table
//   - header.go: header bar, command bar, alert bar, load-failure panel
//   - layout.go, chart.go, money.go, strings.go: rendering helpers
//   - theme.go, style_helpers.go, keys.go, help.go: chrome
//
// # View Synchronization
//
// Screens render only what message handlers have written into the Model:
//
//  1. Entering a screen issues its load command and marks its collection
//     loading. viewstate.Collection.Begin tags the load with a sequence
//     number the result message carries back.
//  2. The loaded message resolves the collection or records its error.
//     Results from superseded loads fail the sequence check and are
//     dropped, so rapid navigation cannot interleave stale rows.
//  3. Mutations go through a per-action in-flight set, one request per
//     control at a time. Endpoints that answer with the updated object
//     (like, follow, edit, toggle read) replace the affected row in place;
//     mutations that imply a different filter (archive, send, publish)
//     reload the collection the new state belongs to.
//  4. Auth failures open the login form targeting the screen the user was
//     on. Compose and draft text survive the round trip.
//
// The model is only ever touched from Update, which the Bubble Tea runtime
// calls serially; no locking appears anywhere in the package.
//
// # Alerts
//
// One alert slot spans all screens (the bar under the header). Showing a
// message replaces the previous one, and every navigation clears it.
// Background bookkeeping (the read receipt a detail view sends) stays
// silent on failure; only user-initiated actions surface errors.
//
// # Key Bindings
//
// Global: 1/2/3 jump to a service from home, T cycles the theme (persisted
// to prefs), h and ? toggle help, esc walks back, q quits from list
// screens, ctrl+c quits anywhere. Screen-specific bindings are listed in
// the help overlay and defined in keys.go.
//
// # Usage Example
//
//	opts := ui.Options{
//		Context:   ctx,
//		Mail:      mailClient,
//		Feed:      feedClient,
//		Finance:   financeClient,
//		Config:    cfg,
//		Screen:    ui.ScreenHome,
//		ThemeName: "Nightfox",
//	}
//	if err := ui.Run(opts); err != nil {
//		log.Fatal(err)
//	}
package ui
