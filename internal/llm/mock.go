package llm

import (
	"context"
	"sync"
)

// MockProvider implements Provider for testing purposes. Responses are
// returned in order; when exhausted, the last one repeats.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []string
	err       error
	requests  []GenerateRequest
}

// NewMockProvider creates a mock text provider with a canned response.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name:      "mock",
		responses: []string{"Generated Headline\n\nThis is mock generated article text."},
	}
}

// WithResponses replaces the canned responses.
func (m *MockProvider) WithResponses(responses ...string) *MockProvider {
	m.responses = responses
	return m
}

// WithError makes every Generate call fail.
func (m *MockProvider) WithError(err error) *MockProvider {
	m.err = err
	return m
}

// Name returns the provider identifier.
func (m *MockProvider) Name() string {
	return m.name
}

// Requests returns the requests seen so far.
func (m *MockProvider) Requests() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateRequest(nil), m.requests...)
}

// Generate records the request and returns the next canned response.
func (m *MockProvider) Generate(_ context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", ErrEmptyResponse
	}

	idx := len(m.requests) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}
