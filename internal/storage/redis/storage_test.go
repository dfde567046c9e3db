package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ponto/internal/storage"
	"github.com/mcoot/ponto/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.StoreSuite{
		NewStore: func() storage.Store {
			mini := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
			return NewWithClient(client, DefaultConfig())
		},
	})
}

func TestCredentialsLiveInPrefixedHash(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	cfg := DefaultConfig()
	cfg.KeyPrefix = "tenant-a"
	s := NewWithClient(client, cfg)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(t.Context(), storage.KeyToken, "abc"))

	assert.Equal(t, "abc", mini.HGet("tenant-a:credentials", storage.KeyToken))
	assert.False(t, mini.Exists("ponto:credentials"))
}

func TestCredentialsHaveNoTTL(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s := NewWithClient(client, DefaultConfig())
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(t.Context(), storage.KeyToken, "abc"))

	assert.Zero(t, mini.TTL(credentialsKey("ponto")))
}

func TestNewWithURL(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(t.Context(), storage.KeyRememberedEmail, "bob@example.com"))
	value, ok, err := s.Get(t.Context(), storage.KeyRememberedEmail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob@example.com", value)
}

func TestNewFailsWithBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestRedisFailureIsAnError(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s := NewWithClient(client, DefaultConfig())

	mini.SetError("server down")

	_, _, err := s.Get(t.Context(), storage.KeyToken)
	assert.Error(t, err)
}
