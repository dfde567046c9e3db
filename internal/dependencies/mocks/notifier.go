package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/ponto/internal/session"
)

// MockNotifier records notices instead of showing them
type MockNotifier struct {
	mu      sync.Mutex
	notices []session.Notice

	// Block, if set, is waited on inside Notify. Tests use it to hold an
	// invalidation in flight.
	Block chan struct{}
}

// Ensure MockNotifier implements Notifier
var _ session.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates an empty MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records notice
func (n *MockNotifier) Notify(_ context.Context, notice session.Notice) {
	if n.Block != nil {
		<-n.Block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Notices returns every recorded notice, in order
func (n *MockNotifier) Notices() []session.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]session.Notice(nil), n.notices...)
}
