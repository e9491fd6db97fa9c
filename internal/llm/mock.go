package llm

import (
	"context"
	"sync"
)

// MockClient implements Client for testing. Responses are returned in
// order; once the script is exhausted the last response repeats, which
// keeps budget-driven loops simple to set up. The mock is exported for use
// by tests in other packages.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     [][]string
}

// NewMockClient creates a MockClient scripted with responses.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// SetError makes every subsequent Complete call fail with err.
func (m *MockClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Complete records the prompts and returns the next scripted response.
func (m *MockClient) Complete(ctx context.Context, prompts []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]string, len(prompts))
	copy(recorded, prompts)
	m.calls = append(m.calls, recorded)

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	idx := len(m.calls) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

// Calls returns the prompt lists passed to Complete, in order.
func (m *MockClient) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}
