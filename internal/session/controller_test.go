package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ponto/internal/dependencies/mocks"
	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/session"
	"github.com/mcoot/ponto/internal/storage"
	"github.com/mcoot/ponto/internal/storage/memory"
	"github.com/mcoot/ponto/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Storage
	creds     *storage.Credentials
	navigator *mocks.MockNavigator
	notifier  *mocks.MockNotifier
	ctrl      *session.Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.creds = storage.NewCredentials(s.store)
	s.navigator = mocks.NewMockNavigator()
	s.notifier = mocks.NewMockNotifier()
	s.ctrl = session.NewController(s.creds, s.navigator, s.notifier, testutil.NopLogger())
}

func (s *ControllerSuite) loginResponse() model.LoginResponse {
	return model.LoginResponse{
		Token:         "tok-123",
		ID:            7,
		Nome:          "Ana",
		Email:         "ana@x.com",
		Administrador: true,
	}
}

func (s *ControllerSuite) seedSession() {
	s.Require().NoError(s.ctrl.Establish(s.ctx, s.loginResponse(), "ana@x.com", true))
}

func (s *ControllerSuite) TestEstablishStoresSession() {
	err := s.ctrl.Establish(s.ctx, s.loginResponse(), "ana@x.com", true)
	s.Require().NoError(err)

	token, ok, err := s.creds.Token(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("tok-123", token)

	profile, err := s.ctrl.CurrentProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Profile{ID: 7, Nome: "Ana", Email: "ana@x.com", Administrador: true}, profile)

	email, ok, err := s.ctrl.RememberedEmail(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("ana@x.com", email)

	s.Equal([]string{session.RoutePunch}, s.navigator.Routes())
}

func (s *ControllerSuite) TestEstablishWithoutRememberClearsEmail() {
	s.Require().NoError(s.creds.SetRememberedEmail(s.ctx, "old@x.com"))

	err := s.ctrl.Establish(s.ctx, s.loginResponse(), "ana@x.com", false)
	s.Require().NoError(err)

	_, ok, err := s.ctrl.RememberedEmail(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ControllerSuite) TestEstablishWithoutTokenFails() {
	resp := s.loginResponse()
	resp.Token = ""

	err := s.ctrl.Establish(s.ctx, resp, "ana@x.com", true)
	s.ErrorIs(err, session.ErrTokenMissing)

	has, err := s.ctrl.HasSession(s.ctx)
	s.Require().NoError(err)
	s.False(has)
	s.Empty(s.navigator.Routes())
}

func (s *ControllerSuite) TestInvalidationKeepsRememberedEmail() {
	s.seedSession()

	s.ctrl.OnSessionInvalidated(s.ctx)

	has, err := s.ctrl.HasSession(s.ctx)
	s.Require().NoError(err)
	s.False(has)

	_, ok, err := s.store.Get(s.ctx, storage.KeyProfile)
	s.Require().NoError(err)
	s.False(ok, "profile should be cleared")

	email, ok, err := s.ctrl.RememberedEmail(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("ana@x.com", email)

	s.Equal([]session.Notice{session.SessionExpiredNotice}, s.notifier.Notices())
	s.Equal(session.RouteLogin, s.navigator.Last())
}

func (s *ControllerSuite) TestRepeatedInvalidationOnlyNavigates() {
	s.seedSession()

	s.ctrl.OnSessionInvalidated(s.ctx)
	s.ctrl.OnSessionInvalidated(s.ctx)

	s.Len(s.notifier.Notices(), 1)
	s.Equal([]string{session.RoutePunch, session.RouteLogin, session.RouteLogin}, s.navigator.Routes())
}

func (s *ControllerSuite) TestNewSessionIsAnnouncedAgain() {
	s.seedSession()
	s.ctrl.OnSessionInvalidated(s.ctx)

	s.seedSession()
	s.ctrl.OnSessionInvalidated(s.ctx)

	s.Len(s.notifier.Notices(), 2)
}

func (s *ControllerSuite) TestConcurrentInvalidationsCoalesce() {
	s.seedSession()
	s.notifier.Block = make(chan struct{})

	const callers = 5
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for range callers {
		go func() {
			defer done.Done()
			started.Done()
			s.ctrl.OnSessionInvalidated(s.ctx)
		}()
	}
	started.Wait()
	close(s.notifier.Block)
	done.Wait()

	s.Len(s.notifier.Notices(), 1)

	logins := 0
	for _, r := range s.navigator.Routes() {
		if r == session.RouteLogin {
			logins++
		}
	}
	// Callers arriving after the shared run finished repeat only the navigation
	s.GreaterOrEqual(logins, 1)
	s.LessOrEqual(logins, callers)
}

func (s *ControllerSuite) TestLogoutClearsEverything() {
	s.seedSession()

	err := s.ctrl.Logout(s.ctx)
	s.Require().NoError(err)

	for _, key := range []string{storage.KeyToken, storage.KeyRememberedEmail, storage.KeyProfile} {
		_, ok, err := s.store.Get(s.ctx, key)
		s.Require().NoError(err)
		s.False(ok, key)
	}
	s.Equal(session.RouteLogin, s.navigator.Last())
	s.Empty(s.notifier.Notices())
}

func (s *ControllerSuite) TestInvalidationAfterLogoutIsSilent() {
	s.seedSession()
	s.Require().NoError(s.ctrl.Logout(s.ctx))

	s.ctrl.OnSessionInvalidated(s.ctx)

	s.Empty(s.notifier.Notices())
	s.Equal(session.RouteLogin, s.navigator.Last())
}

func (s *ControllerSuite) TestCurrentProfileWithoutSession() {
	_, err := s.ctrl.CurrentProfile(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ControllerSuite) TestCurrentProfileHiddenWhenTokenGone() {
	s.seedSession()
	s.Require().NoError(s.creds.ClearToken(s.ctx))

	_, err := s.ctrl.CurrentProfile(s.ctx)
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *ControllerSuite) TestCurrentProfileIncomplete() {
	s.Require().NoError(s.creds.SetToken(s.ctx, "tok"))
	s.Require().NoError(s.creds.SetProfile(s.ctx, model.Profile{Email: "a@x.com"}))

	_, err := s.ctrl.CurrentProfile(s.ctx)
	s.ErrorIs(err, model.ErrProfileIncomplete)
}

func TestControllerImplementsObserver(t *testing.T) {
	creds := storage.NewCredentials(memory.New())
	ctrl := session.NewController(creds, mocks.NewMockNavigator(), mocks.NewMockNotifier(), testutil.NopLogger())

	var observer gateway.SessionObserver = ctrl
	require.NotNil(t, observer)
	assert.NotPanics(t, func() { observer.OnSessionInvalidated(context.Background()) })
}
