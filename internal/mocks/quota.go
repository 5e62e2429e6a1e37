package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
)

// MockQuota implements service.QuotaChecker for testing.
type MockQuota struct {
	ConsumeFn func(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error)
	UsageFn   func(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error)

	// Default response values
	Current domain.QuotaUsage
	Err     error

	ConsumeCalls int
}

// Consume implements service.QuotaChecker.
func (m *MockQuota) Consume(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error) {
	m.ConsumeCalls++
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, userID, plan)
	}
	return m.Current, m.Err
}

// Usage implements service.QuotaChecker.
func (m *MockQuota) Usage(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error) {
	if m.UsageFn != nil {
		return m.UsageFn(ctx, userID, plan)
	}
	return m.Current, m.Err
}
