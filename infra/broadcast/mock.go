package broadcast

import (
	"fmt"
	"sync"

	"precal/core/planner"
)

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Plans  []planner.Report
	Fail   bool
	Closed bool
	mu     sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishPlan records the report or returns an error if configured to fail.
func (m *MockPublisher) PublishPlan(rep planner.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Plans = append(m.Plans, rep)
	return nil
}

// Close marks the publisher as closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}
