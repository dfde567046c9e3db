package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/ponto/internal/session"
)

// MockNavigator records navigation requests
type MockNavigator struct {
	mu     sync.Mutex
	routes []string
}

// Ensure MockNavigator implements Navigator
var _ session.Navigator = (*MockNavigator)(nil)

// NewMockNavigator creates an empty MockNavigator
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

// Replace records route
func (n *MockNavigator) Replace(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

// Routes returns every route navigated to, in order
func (n *MockNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// Last returns the most recent route, or "" if none
func (n *MockNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}
