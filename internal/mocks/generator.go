package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing. Without
// GenerateFn it returns Outcome, or the offline fallback when Outcome is unset.
type MockGenerator struct {
	GenerateFn func(ctx context.Context, req domain.GenerationRequest) generation.Outcome

	Outcome *generation.Outcome

	mu    sync.Mutex
	Calls []domain.GenerationRequest
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements generation.Generator.
func (m *MockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.VideoIdeaContent {
	return m.GenerateWithOutcome(ctx, req).Content
}

// GenerateWithOutcome implements generation.Generator.
func (m *MockGenerator) GenerateWithOutcome(ctx context.Context, req domain.GenerationRequest) generation.Outcome {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if m.Outcome != nil {
		return *m.Outcome
	}
	return generation.Outcome{
		Content:        generation.Fallback(req),
		Source:         domain.IdeaSourceFallback,
		FallbackReason: generation.ErrNoCredential,
		TitleTemplate:  generation.DefaultTitleTemplate,
	}
}

// CallCount returns how many generations were requested.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
