package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/services/token"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidEmployee    = "INVALID_EMPLOYEE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeEmployeeNotFound   = "EMPLOYEE_NOT_FOUND"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an ErrorResponse
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrEmployeeNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{CodeEmployeeNotFound, "Employee not found"}}
	case errors.Is(err, model.ErrEmailTaken):
		return &httpError{http.StatusConflict, ErrorResponse{CodeEmailTaken, "Email already in use"}}
	case errors.Is(err, model.ErrInvalidEmployee):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidEmployee, err.Error()}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, ErrorResponse{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, token.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, ErrorResponse{CodeUnauthorized, "Invalid or expired token"}}
	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, ErrorResponse{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, ErrorResponse{CodeForbidden, "Access denied"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error"}}
}
