package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
	"github.com/phrazzld/ideaflow-api/internal/store"
)

const ideaColumns = `id, user_id, request, content, source, status, scheduled_for, notes, created_at, updated_at`

// PostgresIdeaStore implements store.IdeaStore on PostgreSQL.
type PostgresIdeaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresIdeaStore creates a PostgresIdeaStore.
func NewPostgresIdeaStore(db store.DBTX, logger *slog.Logger) *PostgresIdeaStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresIdeaStore{
		db:     db,
		logger: logger.With(slog.String("component", "idea_store")),
	}
}

var _ store.IdeaStore = (*PostgresIdeaStore)(nil)

// WithTx implements store.IdeaStore.
func (s *PostgresIdeaStore) WithTx(tx *sql.Tx) store.IdeaStore {
	return &PostgresIdeaStore{db: tx, logger: s.logger}
}

// Create implements store.IdeaStore.
func (s *PostgresIdeaStore) Create(ctx context.Context, idea *domain.Idea) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := idea.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	request, content, err := marshalIdeaDocuments(idea)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ideas (`+ideaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		idea.ID, idea.UserID, request, content, string(idea.Source), string(idea.Status),
		nullDate(idea.ScheduledFor), idea.Notes, idea.CreatedAt, idea.UpdatedAt,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to insert idea",
			slog.String("idea_id", idea.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.DebugContext(ctx, "idea created",
		slog.String("idea_id", idea.ID.String()),
		slog.String("source", string(idea.Source)))
	return nil
}

// GetByID implements store.IdeaStore.
func (s *PostgresIdeaStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = $1`, id)

	idea, err := scanIdea(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrIdeaNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to load idea",
			slog.String("idea_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return idea, nil
}

// ListByUser implements store.IdeaStore.
func (s *PostgresIdeaStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ideaColumns+` FROM ideas
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, MapError(err)
	}
	return s.collect(ctx, rows)
}

// ListScheduled implements store.IdeaStore.
func (s *PostgresIdeaStore) ListScheduled(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ideaColumns+` FROM ideas
		WHERE user_id = $1 AND scheduled_for BETWEEN $2 AND $3
		ORDER BY scheduled_for, created_at`, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, MapError(err)
	}
	return s.collect(ctx, rows)
}

// Update implements store.IdeaStore.
func (s *PostgresIdeaStore) Update(ctx context.Context, idea *domain.Idea) error {
	if err := idea.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, content, err := marshalIdeaDocuments(idea)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE ideas
		SET content = $2, status = $3, scheduled_for = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		idea.ID, content, string(idea.Status), nullDate(idea.ScheduledFor), idea.Notes, idea.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrIdeaNotFound)
}

// Delete implements store.IdeaStore.
func (s *PostgresIdeaStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrIdeaNotFound)
}

func (s *PostgresIdeaStore) collect(ctx context.Context, rows *sql.Rows) ([]*domain.Idea, error) {
	defer func() { _ = rows.Close() }()

	ideas := make([]*domain.Idea, 0)
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to scan idea row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ideas, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*domain.Idea, error) {
	var (
		idea           domain.Idea
		request        []byte
		content        []byte
		source, status string
		scheduledFor   sql.NullTime
	)

	err := row.Scan(&idea.ID, &idea.UserID, &request, &content, &source, &status,
		&scheduledFor, &idea.Notes, &idea.CreatedAt, &idea.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(request, &idea.Request); err != nil {
		return nil, store.NewStoreError("idea", "decode", "invalid request document", err)
	}
	if err := json.Unmarshal(content, &idea.Content); err != nil {
		return nil, store.NewStoreError("idea", "decode", "invalid content document", err)
	}

	idea.Source = domain.IdeaSource(source)
	idea.Status = domain.IdeaStatus(status)
	if scheduledFor.Valid {
		day := scheduledFor.Time.UTC()
		idea.ScheduledFor = &day
	}
	return &idea, nil
}

// marshalIdeaDocuments encodes the JSONB columns. They are passed as text so
// the driver sends them in the jsonb text format.
func marshalIdeaDocuments(idea *domain.Idea) (string, string, error) {
	request, err := json.Marshal(idea.Request)
	if err != nil {
		return "", "", store.NewStoreError("idea", "encode", "invalid request document", err)
	}
	content, err := json.Marshal(idea.Content)
	if err != nil {
		return "", "", store.NewStoreError("idea", "encode", "invalid content document", err)
	}
	return string(request), string(content), nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
