package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/ponto/internal/model"
)

// Credentials gives typed access to the well-known keys of a Store
type Credentials struct {
	store Store
}

// NewCredentials wraps a Store
func NewCredentials(store Store) *Credentials {
	return &Credentials{store: store}
}

// Store returns the underlying key-value store
func (c *Credentials) Store() Store {
	return c.store
}

// Token returns the session token, if any
func (c *Credentials) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := c.store.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return "", false, err
	}
	return token, true, nil
}

// SetToken stores the session token
func (c *Credentials) SetToken(ctx context.Context, token string) error {
	return c.store.Set(ctx, KeyToken, token)
}

// ClearToken removes the session token
func (c *Credentials) ClearToken(ctx context.Context) error {
	return c.store.Remove(ctx, KeyToken)
}

// RememberedEmail returns the email remembered for the login form
func (c *Credentials) RememberedEmail(ctx context.Context) (string, bool, error) {
	return c.store.Get(ctx, KeyRememberedEmail)
}

// SetRememberedEmail stores the email remembered for the login form
func (c *Credentials) SetRememberedEmail(ctx context.Context, email string) error {
	return c.store.Set(ctx, KeyRememberedEmail, email)
}

// ClearRememberedEmail forgets the remembered email
func (c *Credentials) ClearRememberedEmail(ctx context.Context) error {
	return c.store.Remove(ctx, KeyRememberedEmail)
}

// Profile returns the cached profile. A profile is only reported while a
// session token is present; without one it is stale and ok is false.
func (c *Credentials) Profile(ctx context.Context) (model.Profile, bool, error) {
	if _, ok, err := c.Token(ctx); err != nil || !ok {
		return model.Profile{}, false, err
	}

	data, ok, err := c.store.Get(ctx, KeyProfile)
	if err != nil || !ok {
		return model.Profile{}, false, err
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return model.Profile{}, false, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return profile, true, nil
}

// SetProfile caches the logged-in user's profile
func (c *Credentials) SetProfile(ctx context.Context, profile model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return c.store.Set(ctx, KeyProfile, string(data))
}

// ClearProfile removes the cached profile
func (c *Credentials) ClearProfile(ctx context.Context) error {
	return c.store.Remove(ctx, KeyProfile)
}

// ClearSession removes the token and the cached profile, keeping the
// remembered email
func (c *Credentials) ClearSession(ctx context.Context) error {
	return errors.Join(c.ClearToken(ctx), c.ClearProfile(ctx))
}

// Clear removes every credential key
func (c *Credentials) Clear(ctx context.Context) error {
	return errors.Join(c.ClearSession(ctx), c.ClearRememberedEmail(ctx))
}
