package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request for presentation purposes.
type Kind int

const (
	// KindTransport covers network-level failures: connection refused,
	// timeout, DNS. No HTTP response was received.
	KindTransport Kind = iota + 1
	// KindAuth covers responses that demand a (re)login: 401, 403, and the
	// login redirects Django issues for session-guarded endpoints.
	KindAuth
	// KindServer covers all other non-success HTTP statuses.
	KindServer
	// KindDecode covers success responses whose body could not be decoded.
	KindDecode
)

// Error is the failure type returned by every API call. Message carries the
// server-provided error string when the body had one, otherwise a generic
// fallback suitable for direct display.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string

	op    string // method + path, for diagnostics
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	if e.Status != 0 {
		if e.Message == "" {
			return fmt.Sprintf("api %s returned status %d", e.path(), e.Status)
		}
		return fmt.Sprintf("api %s returned status %d: %s", e.path(), e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// path is kept on the struct for diagnostics only; it never reaches alerts.
func (e *Error) path() string {
	if e.op == "" {
		return "request"
	}
	return e.op
}

// Message extracts a user-facing message from err. Server-provided messages
// win; anything else falls back to the caller's per-action message.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Kind != KindTransport && apiErr.Kind != KindDecode {
		return apiErr.Message
	}
	return fallback
}

// IsAuth reports whether err means the session is missing or rejected and a
// login should be offered.
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}
