// Package storagetest provides a contract test suite shared by all
// credential store backends.
package storagetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/storage"
)

// StoreSuite runs the storage.Store contract against a backend
type StoreSuite struct {
	suite.Suite

	// NewStore creates a fresh, empty store for each test
	NewStore func() storage.Store

	store storage.Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// Store returns the store under test
func (s *StoreSuite) Store() storage.Store {
	return s.store
}

func (s *StoreSuite) TestSetAndGet() {
	err := s.store.Set(s.ctx, storage.KeyToken, "abc")
	s.Require().NoError(err)

	value, ok, err := s.store.Get(s.ctx, storage.KeyToken)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("abc", value)
}

func (s *StoreSuite) TestGetMissingKeyIsAbsent() {
	value, ok, err := s.store.Get(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(value)
}

func (s *StoreSuite) TestSetOverwrites() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyToken, "first"))
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyToken, "second"))

	value, ok, err := s.store.Get(s.ctx, storage.KeyToken)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("second", value)
}

func (s *StoreSuite) TestEmptyValueIsPresent() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyRememberedEmail, ""))

	_, ok, err := s.store.Get(s.ctx, storage.KeyRememberedEmail)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreSuite) TestRemove() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyToken, "abc"))

	err := s.store.Remove(s.ctx, storage.KeyToken)
	s.Require().NoError(err)

	_, ok, err := s.store.Get(s.ctx, storage.KeyToken)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestRemoveAbsentKeyIsNoop() {
	s.NoError(s.store.Remove(s.ctx, "nonexistent"))
	s.NoError(s.store.Remove(s.ctx, "nonexistent"))
}

func (s *StoreSuite) TestKeysAreIndependent() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyToken, "abc"))
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyRememberedEmail, "alice@example.com"))

	s.Require().NoError(s.store.Remove(s.ctx, storage.KeyToken))

	email, ok, err := s.store.Get(s.ctx, storage.KeyRememberedEmail)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("alice@example.com", email)
}

func (s *StoreSuite) TestConcurrentWriters() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%4)
			_ = s.store.Set(s.ctx, key, fmt.Sprintf("value-%d", i))
			_, _, _ = s.store.Get(s.ctx, key)
			if i%5 == 0 {
				_ = s.store.Remove(s.ctx, key)
			}
		}(i)
	}
	wg.Wait()

	// Every surviving key holds one complete value
	for i := 0; i < 4; i++ {
		value, ok, err := s.store.Get(s.ctx, fmt.Sprintf("key-%d", i))
		s.Require().NoError(err)
		if ok {
			s.Regexp(`^value-\d+$`, value)
		}
	}
}

// Credentials helper tests run against every backend too

func (s *StoreSuite) TestCredentialsProfileRequiresToken() {
	creds := storage.NewCredentials(s.store)
	profile := model.Profile{ID: 7, Nome: "Alice", Email: "alice@example.com", Administrador: true}
	s.Require().NoError(creds.SetProfile(s.ctx, profile))

	_, ok, err := creds.Profile(s.ctx)
	s.Require().NoError(err)
	s.False(ok, "profile without a session must be treated as stale")

	s.Require().NoError(creds.SetToken(s.ctx, "tok"))
	got, ok, err := creds.Profile(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(profile, got)
}

func (s *StoreSuite) TestCredentialsClear() {
	creds := storage.NewCredentials(s.store)
	s.Require().NoError(creds.SetToken(s.ctx, "tok"))
	s.Require().NoError(creds.SetRememberedEmail(s.ctx, "alice@example.com"))
	s.Require().NoError(creds.SetProfile(s.ctx, model.Profile{ID: 1, Nome: "Alice"}))

	s.Require().NoError(creds.Clear(s.ctx))

	for _, key := range []string{storage.KeyToken, storage.KeyRememberedEmail, storage.KeyProfile} {
		_, ok, err := s.store.Get(s.ctx, key)
		s.Require().NoError(err)
		s.False(ok, "key %s should be absent", key)
	}
}

func (s *StoreSuite) TestCredentialsClearSessionKeepsRememberedEmail() {
	creds := storage.NewCredentials(s.store)
	s.Require().NoError(creds.SetToken(s.ctx, "tok"))
	s.Require().NoError(creds.SetRememberedEmail(s.ctx, "alice@example.com"))
	s.Require().NoError(creds.SetProfile(s.ctx, model.Profile{ID: 1, Nome: "Alice"}))

	s.Require().NoError(creds.ClearSession(s.ctx))

	_, ok, err := creds.Token(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.store.Get(s.ctx, storage.KeyProfile)
	s.Require().NoError(err)
	s.False(ok)

	email, ok, err := creds.RememberedEmail(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("alice@example.com", email)
}
