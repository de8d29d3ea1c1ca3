package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMail_MailboxAndEmail(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/emails/inbox":
			_ = json.NewEncoder(w).Encode([]Email{
				{ID: 2, Sender: "bob@example.com", Subject: "Re: Hi", Read: true},
				{ID: 1, Sender: "alice@example.com", Subject: "Hi", Read: false},
			})
		case "/emails/2":
			_ = json.NewEncoder(w).Encode(Email{ID: 2, Sender: "bob@example.com", Subject: "Re: Hi", Body: "hello back", Read: true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	m, err := NewMail(server.URL)
	if err != nil {
		t.Fatalf("NewMail returned error: %v", err)
	}

	emails, err := m.Mailbox(context.Background(), MailboxInbox)
	if err != nil {
		t.Fatalf("Mailbox returned error: %v", err)
	}
	if len(emails) != 2 || emails[0].ID != 2 || emails[1].ID != 1 {
		t.Fatalf("Mailbox = %#v, want two emails in server order", emails)
	}

	email, err := m.Email(context.Background(), 2)
	if err != nil {
		t.Fatalf("Email returned error: %v", err)
	}
	if email.Body != "hello back" {
		t.Fatalf("Email body = %q, want %q", email.Body, "hello back")
	}

	if !strings.HasPrefix(gotUserAgent, "satchel/") {
		t.Fatalf("User-Agent = %q, want satchel/*", gotUserAgent)
	}
}

func TestMail_UpdateEmailSendsOnlySetFields(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails/5" {
			http.NotFound(w, r)
			return
		}
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	m, err := NewMail(server.URL)
	if err != nil {
		t.Fatalf("NewMail returned error: %v", err)
	}

	if err := m.UpdateEmail(context.Background(), 5, EmailUpdate{Read: Bool(true)}); err != nil {
		t.Fatalf("UpdateEmail returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("method = %q, want PUT", gotMethod)
	}
	if gotBody != `{"read":true}` {
		t.Fatalf("body = %q, want read flag only", gotBody)
	}

	if err := m.UpdateEmail(context.Background(), 5, EmailUpdate{Archived: Bool(false)}); err != nil {
		t.Fatalf("UpdateEmail returned error: %v", err)
	}
	if gotBody != `{"archived":false}` {
		t.Fatalf("body = %q, want archived flag only", gotBody)
	}
}

func TestMail_SendEmail(t *testing.T) {
	t.Parallel()

	var gotBody composeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if gotBody.Recipients == "ghost@example.com" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "User with email ghost@example.com does not exist."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message": "Email sent successfully."}`))
	}))
	t.Cleanup(server.Close)

	m, err := NewMail(server.URL)
	if err != nil {
		t.Fatalf("NewMail returned error: %v", err)
	}

	if err := m.SendEmail(context.Background(), "bob@example.com", "Hi", "hello"); err != nil {
		t.Fatalf("SendEmail returned error: %v", err)
	}
	if gotBody.Recipients != "bob@example.com" || gotBody.Subject != "Hi" || gotBody.Body != "hello" {
		t.Fatalf("request body = %#v, want compose fields", gotBody)
	}

	err = m.SendEmail(context.Background(), "ghost@example.com", "Hi", "hello")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("SendEmail error = %v, want *Error", err)
	}
	if apiErr.Message != "User with email ghost@example.com does not exist." {
		t.Fatalf("Message = %q, want server-provided recipient error", apiErr.Message)
	}
}

func TestMail_EmailNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Email not found."}`))
	}))
	t.Cleanup(server.Close)

	m, err := NewMail(server.URL)
	if err != nil {
		t.Fatalf("NewMail returned error: %v", err)
	}

	_, err = m.Email(context.Background(), 99)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Email error = %v, want *Error", err)
	}
	if apiErr.Kind != KindServer || apiErr.Status != 404 || apiErr.Message != "Email not found." {
		t.Fatalf("error = %#v, want 404 with server message", apiErr)
	}
}
