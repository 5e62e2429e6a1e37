package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
)

// IdeaStore defines the interface for persisting a user's idea library.
type IdeaStore interface {
	// Create saves a new idea.
	// Returns validation errors from the domain Idea if data is invalid.
	Create(ctx context.Context, idea *domain.Idea) error

	// GetByID retrieves an idea by ID regardless of owner.
	// Returns ErrIdeaNotFound if the idea does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)

	// ListByUser returns the user's ideas, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Idea, error)

	// ListScheduled returns the user's ideas scheduled on a day in [from, to],
	// ordered by scheduled date.
	ListScheduled(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Idea, error)

	// Update saves content, notes, status and schedule of an existing idea.
	// Returns ErrIdeaNotFound if the idea does not exist.
	Update(ctx context.Context, idea *domain.Idea) error

	// Delete removes an idea.
	// Returns ErrIdeaNotFound if the idea does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns an IdeaStore bound to tx.
	WithTx(tx *sql.Tx) IdeaStore
}
