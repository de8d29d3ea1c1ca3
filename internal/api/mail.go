package api

import (
	"context"
	"fmt"
	"net/http"
)

// Mailbox names accepted by the mail server.
const (
	MailboxInbox   = "inbox"
	MailboxSent    = "sent"
	MailboxArchive = "archive"
)

// Email mirrors the mail server's email payload.
type Email struct {
	ID         int      `json:"id"`
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Timestamp  string   `json:"timestamp"`
	Read       bool     `json:"read"`
	Archived   bool     `json:"archived"`
}

// EmailUpdate is the partial field set accepted by PUT /emails/{id}. Only
// non-nil fields are sent.
type EmailUpdate struct {
	Read     *bool `json:"read,omitempty"`
	Archived *bool `json:"archived,omitempty"`
}

// Bool returns a pointer to v, for building partial updates.
func Bool(v bool) *bool { return &v }

// MailAPI is the surface the mail screens consume. Implemented by *Mail and
// by test fakes.
type MailAPI interface {
	Login(ctx context.Context, username, password string) error
	LoggedIn() bool
	Mailbox(ctx context.Context, name string) ([]Email, error)
	Email(ctx context.Context, id int) (Email, error)
	UpdateEmail(ctx context.Context, id int, fields EmailUpdate) error
	SendEmail(ctx context.Context, recipients, subject, body string) error
}

// Ensure Mail implements MailAPI at compile time.
var _ MailAPI = (*Mail)(nil)

// Mail binds a Client to the mail server's endpoints.
type Mail struct {
	*Client
}

// NewMail builds a mail service for the given server address.
func NewMail(addr string) (*Mail, error) {
	c, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	return &Mail{Client: c}, nil
}

// Mailbox fetches every email in the named mailbox, newest first as the
// server orders them.
func (m *Mail) Mailbox(ctx context.Context, name string) ([]Email, error) {
	return get[[]Email](ctx, m.Client, "/emails/"+name, nil)
}

// Email fetches one email by id.
func (m *Mail) Email(ctx context.Context, id int) (Email, error) {
	return get[Email](ctx, m.Client, fmt.Sprintf("/emails/%d", id), nil)
}

// UpdateEmail applies a partial update (read or archived flags). The server
// answers 204 with no body.
func (m *Mail) UpdateEmail(ctx context.Context, id int, fields EmailUpdate) error {
	_, err := send[struct{}](ctx, m.Client, http.MethodPut, fmt.Sprintf("/emails/%d", id), fields)
	return err
}

type composeRequest struct {
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// SendEmail composes a new email. Recipients is the comma-separated address
// list the server expects.
func (m *Mail) SendEmail(ctx context.Context, recipients, subject, body string) error {
	payload := composeRequest{Recipients: recipients, Subject: subject, Body: body}
	_, err := send[struct{}](ctx, m.Client, http.MethodPost, "/emails", payload)
	return err
}
