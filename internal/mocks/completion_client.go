package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/ideaflow-api/internal/generation"
)

// MockCompletionClient implements generation.CompletionClient for testing.
type MockCompletionClient struct {
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)

	// Default response values
	Response string
	Err      error

	mu       sync.Mutex
	requests []generation.CompletionRequest
}

var _ generation.CompletionClient = (*MockCompletionClient)(nil)

// Complete implements generation.CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return m.Response, m.Err
}

// Requests returns the requests received so far.
func (m *MockCompletionClient) Requests() []generation.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.CompletionRequest(nil), m.requests...)
}
