package mocks

import (
	"sync"

	"github.com/mcoot/ponto/internal/dependencies/random"
)

// MockRandom returns queued strings in order, then "" once the queue is empty
type MockRandom struct {
	mu      sync.Mutex
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result
func (r *MockRandom) String(_ int, _ string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) == 0 {
		return ""
	}
	next := r.strings[0]
	r.strings = r.strings[1:]
	return next
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}
