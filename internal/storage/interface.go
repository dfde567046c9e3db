package storage

import (
	"context"
)

// Well-known credential keys
const (
	KeyToken           = "jwtToken"
	KeyRememberedEmail = "rememberedEmail"
	KeyProfile         = "loggedInUserData"
)

// Backend types
const (
	TypeMemory = "memory"
	TypeFile   = "file"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// Store is a durable key-value store for client credentials.
//
// Values are whole-record replacements, so concurrent writers follow
// last-writer-wins semantics. Implementations must be safe for concurrent use.
type Store interface {
	// Set stores value under key, replacing any existing value
	Set(ctx context.Context, key, value string) error

	// Get returns the value stored under key. ok is false when the key is
	// absent; a missing key is never an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store
	Close() error
}
