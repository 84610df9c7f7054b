package notify

import "sync"

// MockSender records notifications instead of sending them.
type MockSender struct {
	mu sync.Mutex

	VisualError error
	Calls      []Notification
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendVisual(n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, n)
	return m.VisualError
}

func (m *MockSender) VisualAvailable() bool {
	return true
}

func (m *MockSender) calls() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.Calls...)
}
