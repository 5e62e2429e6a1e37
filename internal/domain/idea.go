package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// IdeaStatus represents where an idea sits in the creator's workflow.
type IdeaStatus string

// Possible idea status values
const (
	IdeaStatusDraft     IdeaStatus = "draft"
	IdeaStatusScheduled IdeaStatus = "scheduled"
	IdeaStatusPublished IdeaStatus = "published"
)

// IdeaSource records which generation path produced an idea's content.
type IdeaSource string

// Possible idea sources
const (
	IdeaSourceAI       IdeaSource = "ai"
	IdeaSourceFallback IdeaSource = "fallback"
)

// Common validation errors for Idea
var (
	ErrEmptyIdeaID     = errors.New("idea ID cannot be empty")
	ErrEmptyIdeaUserID = errors.New("idea user ID cannot be empty")
	ErrEmptyIdeaTitle  = errors.New("idea title cannot be empty")
)

// Idea is a generated video idea saved to a user's library. It keeps the
// request that produced it so the idea can be regenerated or audited, and an
// optional calendar date.
type Idea struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	Request      GenerationRequest `json:"request"`
	Content      VideoIdeaContent  `json:"content"`
	Source       IdeaSource        `json:"source"`
	Status       IdeaStatus        `json:"status"`
	ScheduledFor *time.Time        `json:"scheduled_for,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewIdea creates a draft Idea for userID from a generation result.
func NewIdea(
	userID uuid.UUID,
	req GenerationRequest,
	content VideoIdeaContent,
	source IdeaSource,
) (*Idea, error) {
	now := time.Now().UTC()
	idea := &Idea{
		ID:        uuid.New(),
		UserID:    userID,
		Request:   req,
		Content:   content,
		Source:    source,
		Status:    IdeaStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := idea.Validate(); err != nil {
		return nil, err
	}

	return idea, nil
}

// Validate checks if the Idea has valid data.
func (i *Idea) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyIdeaID
	}

	if i.UserID == uuid.Nil {
		return ErrEmptyIdeaUserID
	}

	if i.Content.Title == "" {
		return ErrEmptyIdeaTitle
	}

	if !isValidIdeaStatus(i.Status) {
		return ErrInvalidIdeaStatus
	}

	if i.Source != IdeaSourceAI && i.Source != IdeaSourceFallback {
		return ErrInvalidIdeaSource
	}

	if !i.Request.ContentType.IsValid() {
		return ErrInvalidContentType
	}

	return nil
}

// Schedule places the idea on the calendar at date (truncated to the day in
// UTC), or removes it from the calendar when date is nil. Scheduling a
// published idea keeps it published.
func (i *Idea) Schedule(date *time.Time) {
	if date == nil {
		i.ScheduledFor = nil
		if i.Status == IdeaStatusScheduled {
			i.Status = IdeaStatusDraft
		}
	} else {
		day := date.UTC().Truncate(24 * time.Hour)
		i.ScheduledFor = &day
		if i.Status == IdeaStatusDraft {
			i.Status = IdeaStatusScheduled
		}
	}
	i.UpdatedAt = time.Now().UTC()
}

// UpdateStatus updates the idea's status and its UpdatedAt timestamp.
func (i *Idea) UpdateStatus(status IdeaStatus) error {
	if !isValidIdeaStatus(status) {
		return ErrInvalidIdeaStatus
	}

	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether the idea belongs to userID.
func (i *Idea) IsOwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}

func isValidIdeaStatus(status IdeaStatus) bool {
	switch status {
	case IdeaStatusDraft, IdeaStatusScheduled, IdeaStatusPublished:
		return true
	default:
		return false
	}
}
