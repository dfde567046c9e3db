package ponto

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/model"
)

// UserMessage renders err as the message shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, model.ErrNoSession):
		return "You are not logged in."
	case errors.Is(err, model.ErrProfileIncomplete):
		return "Employee data is incomplete. Please log in again."
	case errors.Is(err, ErrUnexpectedFormat):
		return "The server returned data in an unexpected format."
	}

	var statusErr *UnexpectedStatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Unexpected response from server (status %d).", statusErr.StatusCode)
	}

	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		return err.Error()
	}

	switch gerr.Kind {
	case gateway.KindUnauthenticated:
		return "Your session has expired. Please log in again."
	case gateway.KindForbidden:
		return "You do not have permission for this action."
	case gateway.KindServer:
		if gerr.StatusCode == http.StatusNotFound {
			return "Employee not found."
		}
		if gerr.Message != "" {
			return gerr.Message
		}
		return fmt.Sprintf("Server error: %d", gerr.StatusCode)
	case gateway.KindNoResponse:
		return "Could not reach the server. Check your connection."
	default:
		return "Could not send the request."
	}
}
