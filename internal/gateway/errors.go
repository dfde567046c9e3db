package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed request
type Kind int

const (
	// KindUnauthenticated means the server rejected the session (HTTP 401)
	KindUnauthenticated Kind = iota + 1
	// KindForbidden means the session is valid but not allowed (HTTP 403)
	KindForbidden
	// KindServer is any other error status
	KindServer
	// KindNoResponse means the transport failed before a response arrived
	KindNoResponse
	// KindRequestSetup means the request could not be built
	KindRequestSetup
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindServer:
		return "server_error"
	case KindNoResponse:
		return "no_response"
	case KindRequestSetup:
		return "request_setup"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind, for use with errors.Is
var (
	ErrUnauthenticated = errors.New("session invalid or expired")
	ErrForbidden       = errors.New("access denied")
	ErrServer          = errors.New("server error")
	ErrNoResponse      = errors.New("no response from server")
	ErrRequestSetup    = errors.New("request could not be built")
)

// Error is returned for every failed request
type Error struct {
	Kind       Kind
	StatusCode int    // zero when no response was received
	Message    string // server supplied message, if any
	Method     string
	Path       string
	Err        error // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	switch e.Kind {
	case KindNoResponse, KindRequestSetup:
		b.WriteString(e.sentinel().Error())
		if e.Err != nil {
			fmt.Fprintf(&b, ": %v", e.Err)
		}
	default:
		fmt.Fprintf(&b, "HTTP %d", e.StatusCode)
		if e.Message != "" {
			fmt.Fprintf(&b, ": %s", e.Message)
		} else {
			fmt.Fprintf(&b, ": %s", e.sentinel())
		}
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindForbidden:
		return ErrForbidden
	case KindNoResponse:
		return ErrNoResponse
	case KindRequestSetup:
		return ErrRequestSetup
	default:
		return ErrServer
	}
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none
func StatusCode(err error) int {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.StatusCode
	}
	return 0
}

// KindOf returns the classification of err, or 0 if err did not come from
// the gateway
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// serverMessage extracts the message from an error body. Accepted shapes:
// {"message": "..."} (other fields ignored, whatever their type),
// {"message": ["...", "..."]} and {"error": {"message": "..."}}.
func serverMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	if msg := messageText(fields["message"]); msg != "" {
		return msg
	}

	var nested map[string]json.RawMessage
	if raw, ok := fields["error"]; ok && json.Unmarshal(raw, &nested) == nil {
		return messageText(nested["message"])
	}
	return ""
}

// messageText reads a message that is either a string or a list of strings
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err == nil {
		return strings.Join(msgs, "; ")
	}
	return ""
}
