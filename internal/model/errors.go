package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrNoSession         = errors.New("no active session")
	ErrProfileIncomplete = errors.New("cached profile is incomplete")

	// Employee errors
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmployee    = errors.New("invalid employee data")
)
