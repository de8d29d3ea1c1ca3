// Package api provides HTTP clients for the three coursework servers.
//
// # Overview
//
// Satchel talks to three independent Django applications: a mail server, a
// social-feed server, and a finance server. Each exposes a handful of JSON
// endpoints behind session-cookie authentication. This package owns all HTTP
// concerns: base URL handling, the cookie session, CSRF echoing, the login
// form flow, JSON decoding, and error classification.
//
// # Architecture
//
// One Client per server, three thin services on top:
//
//	Client (client.go)        session, CSRF, generic get/send helpers
//	  ├── Mail (mail.go)      /emails endpoints
//	  ├── Feed (feed.go)      /api/posts and /api/profile endpoints
//	  └── Finance (finance.go) /api/dashboard and /transactions/export
//
// The services embed *Client, so Login and LoggedIn are part of each
// service's surface. Every service also declares an interface (MailAPI,
// FeedAPI, FinanceAPI) that the UI consumes, which keeps screen models
// testable with in-memory fakes.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a satchel User-Agent
//   - Carry a 10-second client timeout
//   - Never follow redirects: Django answers session-guarded endpoints
//     with a redirect to its login page, and the classifier needs to see
//     that status rather than the login page's HTML
//
// Mutating requests additionally echo the csrftoken cookie as the
// X-CSRFToken header, the anti-forgery contract all three servers share.
//
// The generic helpers get[T] and send[T] are package-level functions
// because methods cannot carry type parameters. Services bind them to
// concrete payload types:
//
//	emails, err := get[[]Email](ctx, c, "/emails/inbox", nil)
//	post, err := send[Post](ctx, c, http.MethodPut, "/api/posts/7", likeToggle{ToggleLike: true})
//
// A 2xx response with an empty body leaves T at its zero value; the mail
// server answers updates with 204 and no content.
//
// # Sessions and Login
//
// Login implements the HTML form flow the servers expect:
//
//  1. GET /login primes the csrftoken cookie.
//  2. POST /login with username, password and csrfmiddlewaretoken.
//  3. A redirect response means the session was established (the
//     sessionid cookie is now in the jar); a 200 means the form was
//     re-rendered with an error, i.e. bad credentials.
//
// Sessions live in an in-memory cookie jar and die with the process.
// Nothing fetched from a server is ever written to disk.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind:
//
//   - KindTransport: no HTTP response (refused, timeout, DNS)
//   - KindAuth: 401, 403, or a login redirect; a login should be offered
//   - KindServer: any other non-success status
//   - KindDecode: a success response whose body was not valid JSON
//
// Failure bodies shaped {"error": "..."} have their message extracted into
// Error.Message. The Message helper picks the text an alert should show:
// server-provided messages win, everything else falls back to the caller's
// per-action wording:
//
//	alert.ShowError(api.Message(err, "Unable to load mailbox."))
//
// Underlying causes stay wrapped for diagnostics ("execute request: ...",
// "decode response: ..."); alerts only ever see Message text.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (screens re-fetch on every navigation)
//   - No retries (a failed action is re-triggered by the user)
//   - No request queueing (screens guard their own in-flight actions)
//
// The servers are single-user coursework deployments on localhost; HTTP
// without TLS is the expected transport, though https:// base URLs work.
package api
