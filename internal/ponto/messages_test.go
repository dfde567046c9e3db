package ponto

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/model"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "forbidden", err: &gateway.Error{Kind: gateway.KindForbidden, StatusCode: 403}, want: "You do not have permission for this action."},
		{name: "not found", err: &gateway.Error{Kind: gateway.KindServer, StatusCode: 404, Message: "nope"}, want: "Employee not found."},
		{name: "server message", err: &gateway.Error{Kind: gateway.KindServer, StatusCode: 422, Message: "email already in use"}, want: "email already in use"},
		{name: "bare server error", err: &gateway.Error{Kind: gateway.KindServer, StatusCode: 500}, want: "Server error: 500"},
		{name: "no response", err: &gateway.Error{Kind: gateway.KindNoResponse}, want: "Could not reach the server. Check your connection."},
		{name: "setup", err: &gateway.Error{Kind: gateway.KindRequestSetup}, want: "Could not send the request."},
		{name: "expired", err: &gateway.Error{Kind: gateway.KindUnauthenticated, StatusCode: 401}, want: "Your session has expired. Please log in again."},
		{name: "wrapped", err: fmt.Errorf("loading: %w", &gateway.Error{Kind: gateway.KindForbidden}), want: "You do not have permission for this action."},
		{name: "bad login", err: fmt.Errorf("%w: %w", model.ErrInvalidCredentials, &gateway.Error{Kind: gateway.KindUnauthenticated}), want: "Invalid email or password."},
		{name: "unexpected status", err: &UnexpectedStatusError{Operation: "delete employee", StatusCode: 200}, want: "Unexpected response from server (status 200)."},
		{name: "no session", err: model.ErrNoSession, want: "You are not logged in."},
		{name: "incomplete profile", err: fmt.Errorf("x: %w", model.ErrProfileIncomplete), want: "Employee data is incomplete. Please log in again."},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
