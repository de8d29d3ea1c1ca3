package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseBaseURL_NormalizesAddresses(t *testing.T) {
	u, err := parseBaseURL("127.0.0.1:8000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8000" {
		t.Fatalf("url = %q, want http://127.0.0.1:8000", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatalf("parseBaseURL accepted an empty address, want error")
	}
}

func newLoginServer(t *testing.T, password string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-abc", Path: "/"})
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<form></form>"))
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "bad form", http.StatusBadRequest)
				return
			}
			if r.PostForm.Get("csrfmiddlewaretoken") != "csrf-abc" {
				http.Error(w, "csrf", http.StatusForbidden)
				return
			}
			if r.PostForm.Get("password") != password {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<form>Invalid credentials</form>"))
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "sess-xyz", Path: "/"})
			w.Header().Set("Location", "/")
			w.WriteHeader(http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_LoginEstablishesSession(t *testing.T) {
	t.Parallel()

	server := newLoginServer(t, "hunter2")

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.LoggedIn() {
		t.Fatalf("LoggedIn = true before login")
	}

	if err := c.Login(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !c.LoggedIn() {
		t.Fatalf("LoggedIn = false after successful login")
	}
}

func TestClient_LoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	server := newLoginServer(t, "hunter2")

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.Login(context.Background(), "alice", "wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login error = %v, want *Error", err)
	}
	if apiErr.Kind != KindAuth {
		t.Fatalf("Kind = %d, want KindAuth", apiErr.Kind)
	}
	if apiErr.Message != "Invalid username or password." {
		t.Fatalf("Message = %q, want invalid credentials message", apiErr.Message)
	}
	if c.LoggedIn() {
		t.Fatalf("LoggedIn = true after rejected login")
	}
}

func TestClient_MutationsEchoCSRFCookie(t *testing.T) {
	t.Parallel()

	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login" && r.Method == http.MethodGet:
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-777", Path: "/"})
			_, _ = w.Write([]byte("<form></form>"))
		case r.URL.Path == "/things" && r.Method == http.MethodPost:
			gotHeader = r.Header.Get("X-CSRFToken")
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.primeCSRF(context.Background()); err != nil {
		t.Fatalf("primeCSRF returned error: %v", err)
	}

	if _, err := send[struct{}](context.Background(), c, http.MethodPost, "/things", nil); err != nil {
		t.Fatalf("send returned error: %v", err)
	}
	if gotHeader != "csrf-777" {
		t.Fatalf("X-CSRFToken = %q, want csrf-777", gotHeader)
	}
}

func TestClient_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/server-error":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "Something broke."}`))
		case "/opaque-error":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>nope</html>"))
		case "/needs-login":
			w.Header().Set("Location", "/login?next=/needs-login")
			w.WriteHeader(http.StatusFound)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error": "You cannot edit this post."}`))
		case "/garbled":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		wantKind    Kind
		wantStatus  int
		wantMessage string
	}{
		{"structured server error", "/server-error", KindServer, 500, "Something broke."},
		{"opaque server error", "/opaque-error", KindServer, 502, ""},
		{"login redirect", "/needs-login", KindAuth, 302, "Authentication required."},
		{"forbidden with message", "/forbidden", KindAuth, 403, "You cannot edit this post."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := get[map[string]any](context.Background(), c, tc.path, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Kind != tc.wantKind {
				t.Fatalf("Kind = %d, want %d", apiErr.Kind, tc.wantKind)
			}
			if apiErr.Status != tc.wantStatus {
				t.Fatalf("Status = %d, want %d", apiErr.Status, tc.wantStatus)
			}
			if apiErr.Message != tc.wantMessage {
				t.Fatalf("Message = %q, want %q", apiErr.Message, tc.wantMessage)
			}
		})
	}

	_, err = get[map[string]any](context.Background(), c, "/garbled", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindDecode {
		t.Fatalf("garbled body error = %v, want KindDecode", err)
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error text = %q, want decode response context", err.Error())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = get[struct{}](context.Background(), c, "/anything", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("error = %v, want KindTransport", err)
	}
	if !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("error text = %q, want execute request context", err.Error())
	}
}

func TestMessage_PrefersServerText(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"server message", &Error{Kind: KindServer, Status: 400, Message: "Post content cannot be empty."}, "Unable to save.", "Post content cannot be empty."},
		{"auth message", &Error{Kind: KindAuth, Status: 401, Message: "Authentication required."}, "Unable to save.", "Authentication required."},
		{"empty server message", &Error{Kind: KindServer, Status: 500}, "Unable to save.", "Unable to save."},
		{"transport", &Error{Kind: KindTransport, Message: "ignored"}, "Unable to load.", "Unable to load."},
		{"decode", &Error{Kind: KindDecode}, "Unable to load.", "Unable to load."},
		{"plain error", errors.New("boom"), "Unable to load.", "Unable to load."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err, tc.fallback); got != tc.want {
				t.Fatalf("Message = %q, want %q", got, tc.want)
			}
		})
	}
}
