package e2e_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/ponto/internal/api"
	"github.com/mcoot/ponto/internal/factory"
	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/ponto"
	"github.com/mcoot/ponto/internal/session"
	"github.com/mcoot/ponto/internal/storage"
	"github.com/mcoot/ponto/internal/testutil"
)

// testEnv is a pontod router behind httptest plus a client stack pointed at it
type testEnv struct {
	app    *factory.TestApp
	client *factory.TestClient
	admin  *model.Employee
	worker *model.Employee

	mu          sync.Mutex
	authHeaders []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{app: factory.NewTestApp()}

	router := api.NewRouter(api.RouterConfig{
		Logger:    testutil.NopLogger(),
		Employees: env.app.Employees,
		Tokens:    env.app.Tokens,
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.authHeaders = append(env.authHeaders, r.Header.Get("Authorization"))
		env.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	var err error
	env.admin, err = env.app.Employees.Create(ctx, model.NewEmployee{Nome: "Ana Admin", Email: "ana@x.com", Senha: "admin-pw", Administrador: true})
	require.NoError(t, err)
	env.worker, err = env.app.Employees.Create(ctx, model.NewEmployee{Nome: "Bruno Lima", Email: "bruno@x.com", Senha: "worker-pw"})
	require.NoError(t, err)

	env.client = factory.NewTestClient(server.URL, server.Client())
	return env
}

func (e *testEnv) lastAuthHeader() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.authHeaders) == 0 {
		return ""
	}
	return e.authHeaders[len(e.authHeaders)-1]
}

func (e *testEnv) storeValue(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := e.client.Store.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestLoginThenAuthenticatedRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", true)
	require.NoError(t, err)
	assert.Equal(t, env.worker.ID, profile.ID)
	assert.Empty(t, env.lastAuthHeader(), "login is sent without a session")
	assert.Equal(t, session.RoutePunch, env.client.Navigator.Last())

	token, ok := env.storeValue(t, storage.KeyToken)
	require.True(t, ok)

	employee, err := env.client.API.GetEmployee(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bruno Lima", employee.Nome)
	assert.Equal(t, "Bearer "+token, env.lastAuthHeader())

	cached, err := env.client.Session.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, cached)
}

func TestPunchRecordsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", false)
	require.NoError(t, err)

	msg, err := env.client.API.Punch(ctx, profile.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "Punch recorded")

	employee, err := env.client.API.GetEmployee(ctx, profile.ID)
	require.NoError(t, err)
	last, ok := ponto.LastPunch(employee)
	require.True(t, ok)
	assert.True(t, last.Equal(env.app.MockClock.Now()))
}

func TestExpiredTokenEndsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", true)
	require.NoError(t, err)

	env.app.MockClock.Advance(9 * time.Hour)

	_, err = env.client.API.GetEmployee(ctx, profile.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrUnauthenticated))
	assert.Equal(t, http.StatusUnauthorized, gateway.StatusCode(err))

	_, ok := env.storeValue(t, storage.KeyToken)
	assert.False(t, ok)
	_, ok = env.storeValue(t, storage.KeyProfile)
	assert.False(t, ok)
	email, ok := env.storeValue(t, storage.KeyRememberedEmail)
	assert.True(t, ok)
	assert.Equal(t, "bruno@x.com", email)

	assert.Equal(t, []session.Notice{session.SessionExpiredNotice}, env.client.Notifier.Notices())
	assert.Equal(t, session.RouteLogin, env.client.Navigator.Last())

	// The next request carries no token and only repeats the redirect
	_, err = env.client.API.GetEmployee(ctx, profile.ID)
	require.Error(t, err)
	assert.Empty(t, env.lastAuthHeader())
	assert.Len(t, env.client.Notifier.Notices(), 1)
}

func TestConcurrentRejectionsNotifyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", false)
	require.NoError(t, err)
	env.app.MockClock.Advance(9 * time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.client.API.GetEmployee(ctx, profile.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.True(t, errors.Is(err, gateway.ErrUnauthenticated))
	}
	assert.Len(t, env.client.Notifier.Notices(), 1)
	assert.Equal(t, session.RouteLogin, env.client.Navigator.Last())
}

func TestForbiddenKeepsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", false)
	require.NoError(t, err)

	_, err = env.client.API.ListEmployees(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrForbidden))
	assert.Equal(t, "You do not have permission for this action.", ponto.UserMessage(err))

	_, ok := env.storeValue(t, storage.KeyToken)
	assert.True(t, ok)
	assert.Empty(t, env.client.Notifier.Notices())

	// Another employee's record is also off limits
	_, err = env.client.API.GetEmployee(ctx, env.admin.ID)
	assert.True(t, errors.Is(err, gateway.ErrForbidden))
}

func TestRequestWithoutLoginIsRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.API.GetEmployee(context.Background(), env.worker.ID)
	require.Error(t, err)
	assert.Equal(t, gateway.KindUnauthenticated, gateway.KindOf(err))
	assert.Empty(t, env.lastAuthHeader())
	assert.Equal(t, session.RouteLogin, env.client.Navigator.Last())
}

func TestWrongPasswordIsNotSessionExpiry(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.API.Login(context.Background(), "bruno@x.com", "wrong", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidCredentials))
	assert.Empty(t, env.client.Notifier.Notices())
	assert.Empty(t, env.client.Navigator.Routes())

	_, ok := env.storeValue(t, storage.KeyRememberedEmail)
	assert.False(t, ok)
}

func TestAdminEmployeeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.API.Login(ctx, "ana@x.com", "admin-pw", false)
	require.NoError(t, err)

	created, err := env.client.API.CreateEmployee(ctx, model.NewEmployee{Nome: "Carla Dias", Email: "carla@x.com", Senha: "pw"})
	require.NoError(t, err)

	list, err := env.client.API.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Len(t, ponto.FilterByName(list, "dias"), 1)

	nome := "Carla Souza"
	blank := ""
	updated, err := env.client.API.UpdateEmployee(ctx, created.ID, model.EmployeeUpdate{Nome: &nome, Senha: &blank})
	require.NoError(t, err)
	assert.Equal(t, nome, updated.Nome)
	_, err = env.app.Employees.Authenticate(ctx, "carla@x.com", "pw")
	assert.NoError(t, err)

	require.NoError(t, env.client.API.DeleteEmployee(ctx, created.ID))

	_, err = env.client.API.GetEmployee(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, gateway.StatusCode(err))
	assert.Equal(t, "Employee not found.", ponto.UserMessage(err))

	err = env.client.API.DeleteEmployee(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, gateway.StatusCode(err))
}

func TestLogoutClearsCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.API.Login(ctx, "bruno@x.com", "worker-pw", true)
	require.NoError(t, err)

	require.NoError(t, env.client.Session.Logout(ctx))

	for _, key := range []string{storage.KeyToken, storage.KeyRememberedEmail, storage.KeyProfile} {
		_, ok := env.storeValue(t, key)
		assert.False(t, ok, key)
	}
	assert.Equal(t, session.RouteLogin, env.client.Navigator.Last())

	_, err = env.client.Session.CurrentProfile(ctx)
	assert.True(t, errors.Is(err, model.ErrNoSession))
}
