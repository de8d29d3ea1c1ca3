package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "satchel/0.1"
	requestTimeout   = 10 * time.Second

	loginPath     = "/login"
	sessionCookie = "sessionid"
	csrfCookie    = "csrftoken"
	csrfHeader    = "X-CSRFToken"
)

// Client carries one HTTP session against a single server. The three
// services (mail, feed, finance) each wrap their own Client with endpoint
// bindings; sessions are never shared between servers.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given server address. Redirects are
// never followed: the servers answer session-guarded endpoints with a
// redirect to their login page, and the caller needs to see that status
// rather than the login page's HTML.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized server address the client was built for.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// LoggedIn reports whether a session cookie is held for the server.
func (c *Client) LoggedIn() bool {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			return true
		}
	}
	return false
}

// Login authenticates against the server's session form. A GET primes the
// CSRF cookie, then the credentials are posted; the server redirects on
// success and re-renders the form with status 200 on bad credentials.
func (c *Client) Login(ctx context.Context, username, password string) error {
	const op = "POST " + loginPath

	token, err := c.primeCSRF(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("csrfmiddlewaretoken", token)

	loginURL := c.baseURL.ResolveReference(&url.URL{Path: loginPath})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Kind: KindTransport, op: op, cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", loginURL.String())
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, op: op, cause: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil
	case resp.StatusCode == http.StatusOK:
		// The form was re-rendered instead of redirecting home.
		return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: "Invalid username or password.", op: op}
	default:
		return &Error{Kind: KindServer, Status: resp.StatusCode, op: op}
	}
}

// primeCSRF ensures the CSRF cookie is present, fetching the login page if
// needed, and returns its value.
func (c *Client) primeCSRF(ctx context.Context) (string, error) {
	if token := c.csrfToken(); token != "" {
		return token, nil
	}
	if _, err := c.roundTrip(ctx, http.MethodGet, &url.URL{Path: loginPath}, nil); err != nil {
		return "", err
	}
	token := c.csrfToken()
	if token == "" {
		return "", &Error{Kind: KindServer, Message: "The server did not issue a CSRF token.", op: "GET " + loginPath}
	}
	return token, nil
}

func (c *Client) csrfToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookie {
			return cookie.Value
		}
	}
	return ""
}

// get issues a GET against path and decodes the JSON response into T.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var payload T
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	raw, err := c.roundTrip(ctx, http.MethodGet, rel, nil)
	if err != nil {
		return payload, err
	}
	return payload, decodeBody(raw, &payload, http.MethodGet+" "+path)
}

// send issues a mutating request carrying fields as a JSON body (nil sends
// no body) and decodes the response into T. A 2xx response with an empty
// body, as the mail server's 204 update answers, leaves T at its zero value.
func send[T any](ctx context.Context, c *Client, method, path string, fields any) (T, error) {
	var payload T
	op := method + " " + path

	var body io.Reader
	if fields != nil {
		buf, err := json.Marshal(fields)
		if err != nil {
			return payload, &Error{Kind: KindDecode, op: op, cause: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	raw, err := c.roundTrip(ctx, method, &url.URL{Path: path}, body)
	if err != nil {
		return payload, err
	}
	return payload, decodeBody(raw, &payload, op)
}

func decodeBody(raw []byte, dest any, op string) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &Error{Kind: KindDecode, op: op, cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// roundTrip executes one request and classifies the outcome. Mutating
// requests carry the anti-forgery header echoed from the CSRF cookie.
func (c *Client) roundTrip(ctx context.Context, method string, rel *url.URL, body io.Reader) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	op := method + " " + rel.Path

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, op: op, cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, op: op, cause: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, op: op, cause: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		// Session-guarded endpoint bouncing to the login page.
		return nil, &Error{Kind: KindAuth, Status: resp.StatusCode, Message: "Authentication required.", op: op}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindAuth, Status: resp.StatusCode, Message: serverMessage(raw), op: op}
	default:
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(raw), op: op}
	}
}

// serverMessage extracts the error field the servers place in failure
// bodies. A body that is not JSON, or has no error field, yields "".
func serverMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return nil, fmt.Errorf("server address required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
