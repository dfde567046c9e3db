package factory

import (
	"net/http"
	"time"

	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/dependencies/mocks"
	"github.com/mcoot/ponto/internal/services/token"
	"github.com/mcoot/ponto/internal/storage/memory"
	"github.com/mcoot/ponto/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(mockClock, mockRandom, token.Config{Secret: "test-secret"}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// TestClient extends Client with the fakes it was built with
type TestClient struct {
	*Client

	MemoryStore *memory.Storage
	Navigator   *mocks.MockNavigator
	Notifier    *mocks.MockNotifier
}

// NewTestClient creates a client stack against baseURL with an in-memory
// store and recording navigator/notifier
func NewTestClient(baseURL string, httpClient *http.Client) *TestClient {
	store := memory.New()
	nav := mocks.NewMockNavigator()
	notifier := mocks.NewMockNotifier()

	client := newClientWithStore(store, config.ServerEndpoint{URL: baseURL}, nav, notifier, httpClient,
		testutil.NopLogger())

	return &TestClient{
		Client:      client,
		MemoryStore: store,
		Navigator:   nav,
		Notifier:    notifier,
	}
}
