package llm

import (
	"context"
	"sync"
)

// MockClient is a scriptable Client for tests and the "mock" provider.
// Responses are returned in order; once exhausted, the last one
// repeats. With no script it echoes a canned reply.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     []string
	index     int
}

// NewMockClient creates an unscripted mock.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Script queues responses, one per call.
func (m *MockClient) Script(responses ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
	return m
}

// Fail queues an error for the next call.
func (m *MockClient) Fail(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
	return m
}

// Complete returns the next scripted response.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, userPrompt)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return "", err
	}
	if len(m.responses) == 0 {
		return "mock response", nil
	}
	if m.index >= len(m.responses) {
		return m.responses[len(m.responses)-1], nil
	}
	resp := m.responses[m.index]
	m.index++
	return resp, nil
}

// Calls returns every user prompt seen so far.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
