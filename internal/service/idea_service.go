package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/metrics"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
)

// Paging and calendar bounds.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	MaxCalendarRange = 366 * 24 * time.Hour
)

// IdeaRepository is the persistence the idea service needs.
type IdeaRepository interface {
	Create(ctx context.Context, idea *domain.Idea) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Idea, error)
	ListScheduled(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Idea, error)
	Update(ctx context.Context, idea *domain.Idea) error
	Delete(ctx context.Context, id uuid.UUID) error

	// InTx runs fn with a repository whose operations share one transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, repo IdeaRepository) error) error
}

// UserRepository looks up the account a request acts for.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// QuotaChecker counts generations against a plan's daily limit.
type QuotaChecker interface {
	// Consume records one generation and returns the resulting usage.
	Consume(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error)
	// Usage returns today's usage without recording anything.
	Usage(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error)
}

// IdeaUpdate carries the editable fields of an idea. Nil fields are left
// unchanged.
type IdeaUpdate struct {
	Content *domain.VideoIdeaContent
	Notes   *string
	Status  *domain.IdeaStatus
}

// IdeaService manages a user's idea library.
type IdeaService interface {
	// GenerateIdea checks the daily quota, generates an idea for req and
	// saves it as a draft. Generation itself never fails; the idea records
	// whether it came from the language model or the offline fallback.
	GenerateIdea(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*domain.Idea, error)

	// GetIdea returns an idea owned by userID.
	GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*domain.Idea, error)

	// ListIdeas returns the user's ideas, newest first.
	ListIdeas(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Idea, error)

	// UpdateIdea edits content, notes or status of an idea owned by userID.
	UpdateIdea(ctx context.Context, userID, ideaID uuid.UUID, update IdeaUpdate) (*domain.Idea, error)

	// ScheduleIdea puts the idea on the calendar at date, or removes it when
	// date is nil.
	ScheduleIdea(ctx context.Context, userID, ideaID uuid.UUID, date *time.Time) (*domain.Idea, error)

	// DeleteIdea removes an idea owned by userID.
	DeleteIdea(ctx context.Context, userID, ideaID uuid.UUID) error

	// Calendar returns the user's ideas scheduled on a day in [from, to].
	Calendar(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Idea, error)
}

type ideaServiceImpl struct {
	ideas     IdeaRepository
	users     UserRepository
	generator generation.Generator
	quota     QuotaChecker
	logger    *slog.Logger
}

var _ IdeaService = (*ideaServiceImpl)(nil)

// NewIdeaService creates an IdeaService. quota may be nil, in which case
// generations are not limited.
func NewIdeaService(
	ideas IdeaRepository,
	users UserRepository,
	generator generation.Generator,
	quota QuotaChecker,
	logger *slog.Logger,
) (IdeaService, error) {
	switch {
	case ideas == nil:
		return nil, &IdeaServiceError{Operation: "create_service", Message: "ideas repository cannot be nil"}
	case users == nil:
		return nil, &IdeaServiceError{Operation: "create_service", Message: "users repository cannot be nil"}
	case generator == nil:
		return nil, &IdeaServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ideaServiceImpl{
		ideas:     ideas,
		users:     users,
		generator: generator,
		quota:     quota,
		logger:    logger.With("component", "idea_service"),
	}, nil
}

// GenerateIdea implements IdeaService.
func (s *ideaServiceImpl) GenerateIdea(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*domain.Idea, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	outcome := s.generator.GenerateWithOutcome(ctx, req)
	metrics.RecordGeneration(string(outcome.Source), generation.Reason(outcome.FallbackReason), outcome.Duration)

	idea, err := domain.NewIdea(userID, req, outcome.Content, outcome.Source)
	if err != nil {
		log.ErrorContext(ctx, "generated idea failed validation",
			"error", err,
			"user_id", userID,
			"source", outcome.Source)
		return nil, NewIdeaServiceError("generate_idea", "invalid generated idea", err)
	}

	if err := s.ideas.Create(ctx, idea); err != nil {
		log.ErrorContext(ctx, "failed to save generated idea",
			"error", err,
			"user_id", userID)
		return nil, NewIdeaServiceError("generate_idea", "failed to save idea", err)
	}

	log.InfoContext(ctx, "idea generated",
		"idea_id", idea.ID,
		"user_id", userID,
		"source", idea.Source,
		"fallback_reason", generation.Reason(outcome.FallbackReason),
		"duration_ms", outcome.Duration.Milliseconds())

	return idea, nil
}

// checkQuota consumes one generation from the user's daily quota. Quota
// store failures are logged and the generation is allowed.
func (s *ideaServiceImpl) checkQuota(ctx context.Context, userID uuid.UUID) error {
	if s.quota == nil {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to load user for quota check", "error", err, "user_id", userID)
		return NewIdeaServiceError("generate_idea", "failed to load user", err)
	}

	usage, err := s.quota.Consume(ctx, userID, user.Plan)
	if err != nil {
		log.WarnContext(ctx, "quota check failed, allowing generation", "error", err, "user_id", userID)
		return nil
	}

	if !usage.Allowed() {
		metrics.RecordQuotaRejection(string(user.Plan))
		log.InfoContext(ctx, "daily generation quota exceeded",
			"user_id", userID,
			"plan", user.Plan,
			"limit", usage.Limit)
		return ErrQuotaExceeded
	}
	return nil
}

// GetIdea implements IdeaService.
func (s *ideaServiceImpl) GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*domain.Idea, error) {
	idea, err := ownedIdea(ctx, s.ideas, userID, ideaID)
	if err != nil {
		return nil, NewIdeaServiceError("get_idea", "failed to retrieve idea", err)
	}
	return idea, nil
}

// ListIdeas implements IdeaService.
func (s *ideaServiceImpl) ListIdeas(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Idea, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	ideas, err := s.ideas.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to list ideas",
			"error", err, "user_id", userID)
		return nil, NewIdeaServiceError("list_ideas", "failed to list ideas", err)
	}
	return ideas, nil
}

// UpdateIdea implements IdeaService.
func (s *ideaServiceImpl) UpdateIdea(
	ctx context.Context,
	userID, ideaID uuid.UUID,
	update IdeaUpdate,
) (*domain.Idea, error) {
	var updated *domain.Idea

	err := s.ideas.InTx(ctx, func(ctx context.Context, repo IdeaRepository) error {
		idea, err := ownedIdea(ctx, repo, userID, ideaID)
		if err != nil {
			return err
		}

		if update.Content != nil {
			content := *update.Content
			// These fields always describe the request the idea came from.
			content.Category = idea.Request.Category
			content.Subcategory = idea.Request.Subcategory
			content.VideoLength = idea.Request.VideoLength
			idea.Content = content
		}
		if update.Notes != nil {
			idea.Notes = *update.Notes
		}
		if update.Status != nil {
			if err := idea.UpdateStatus(*update.Status); err != nil {
				return err
			}
		}
		idea.UpdatedAt = time.Now().UTC()

		if err := idea.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, idea); err != nil {
			return err
		}
		updated = idea
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "update_idea", err, userID, ideaID)
		return nil, NewIdeaServiceError("update_idea", "failed to update idea", err)
	}

	return updated, nil
}

// ScheduleIdea implements IdeaService.
func (s *ideaServiceImpl) ScheduleIdea(
	ctx context.Context,
	userID, ideaID uuid.UUID,
	date *time.Time,
) (*domain.Idea, error) {
	var scheduled *domain.Idea

	err := s.ideas.InTx(ctx, func(ctx context.Context, repo IdeaRepository) error {
		idea, err := ownedIdea(ctx, repo, userID, ideaID)
		if err != nil {
			return err
		}

		idea.Schedule(date)
		if err := repo.Update(ctx, idea); err != nil {
			return err
		}
		scheduled = idea
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "schedule_idea", err, userID, ideaID)
		return nil, NewIdeaServiceError("schedule_idea", "failed to schedule idea", err)
	}

	return scheduled, nil
}

// DeleteIdea implements IdeaService.
func (s *ideaServiceImpl) DeleteIdea(ctx context.Context, userID, ideaID uuid.UUID) error {
	err := s.ideas.InTx(ctx, func(ctx context.Context, repo IdeaRepository) error {
		if _, err := ownedIdea(ctx, repo, userID, ideaID); err != nil {
			return err
		}
		return repo.Delete(ctx, ideaID)
	})
	if err != nil {
		s.logFailure(ctx, "delete_idea", err, userID, ideaID)
		return NewIdeaServiceError("delete_idea", "failed to delete idea", err)
	}
	return nil
}

// Calendar implements IdeaService.
func (s *ideaServiceImpl) Calendar(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Idea, error) {
	if to.Before(from) || to.Sub(from) > MaxCalendarRange {
		return nil, ErrInvalidDateRange
	}

	ideas, err := s.ideas.ListScheduled(ctx, userID, from, to)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to load calendar",
			"error", err, "user_id", userID)
		return nil, NewIdeaServiceError("calendar", "failed to load calendar", err)
	}
	return ideas, nil
}

func (s *ideaServiceImpl) logFailure(ctx context.Context, op string, err error, userID, ideaID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, ErrNotOwned) || errors.Is(err, ErrIdeaNotFound) {
		log.DebugContext(ctx, "idea not accessible", "operation", op, "user_id", userID, "idea_id", ideaID)
		return
	}
	log.ErrorContext(ctx, "idea operation failed",
		"operation", op,
		"error", err,
		"user_id", userID,
		"idea_id", ideaID)
}

// ownedIdea loads ideaID and checks that userID owns it.
func ownedIdea(ctx context.Context, repo IdeaRepository, userID, ideaID uuid.UUID) (*domain.Idea, error) {
	idea, err := repo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, NewIdeaServiceError("get_idea", "failed to retrieve idea", err)
	}
	if !idea.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: idea %s", ErrNotOwned, ideaID)
	}
	return idea, nil
}
