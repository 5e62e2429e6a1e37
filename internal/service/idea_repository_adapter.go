package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/store"
)

// NewIdeaRepositoryAdapter adapts a store.IdeaStore to IdeaRepository. db is
// the connection transactions are started on.
func NewIdeaRepositoryAdapter(ideaStore store.IdeaStore, db *sql.DB) IdeaRepository {
	return &ideaRepositoryAdapter{ideaStore: ideaStore, db: db}
}

type ideaRepositoryAdapter struct {
	ideaStore store.IdeaStore
	db        *sql.DB
}

func (a *ideaRepositoryAdapter) Create(ctx context.Context, idea *domain.Idea) error {
	return a.ideaStore.Create(ctx, idea)
}

func (a *ideaRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	return a.ideaStore.GetByID(ctx, id)
}

func (a *ideaRepositoryAdapter) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Idea, error) {
	return a.ideaStore.ListByUser(ctx, userID, limit, offset)
}

func (a *ideaRepositoryAdapter) ListScheduled(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Idea, error) {
	return a.ideaStore.ListScheduled(ctx, userID, from, to)
}

func (a *ideaRepositoryAdapter) Update(ctx context.Context, idea *domain.Idea) error {
	return a.ideaStore.Update(ctx, idea)
}

func (a *ideaRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.ideaStore.Delete(ctx, id)
}

// InTx runs fn with a repository bound to one database transaction.
func (a *ideaRepositoryAdapter) InTx(
	ctx context.Context,
	fn func(ctx context.Context, repo IdeaRepository) error,
) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &ideaRepositoryAdapter{ideaStore: a.ideaStore.WithTx(tx), db: a.db})
	})
}
