package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/service"
)

// DateLayout is the format of calendar dates in requests and responses.
const DateLayout = "2006-01-02"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// GenerateIdeaRequest is the payload of POST /api/ideas/generate.
type GenerateIdeaRequest struct {
	Category      string `json:"category"                validate:"required,max=100"`
	Subcategory   string `json:"subcategory"             validate:"required,max=200"`
	VideoFocus    string `json:"videoFocus"              validate:"required,max=500"`
	VideoLength   string `json:"videoLength"             validate:"required,max=100"`
	TemplateStyle string `json:"templateStyle"           validate:"required,max=100"`
	ContentTone   string `json:"contentTone"             validate:"required,max=100"`
	TitleTemplate string `json:"titleTemplate,omitempty" validate:"max=200"`
	ContentType   string `json:"contentType,omitempty"   validate:"omitempty,content_type"`
	TimingDetail  bool   `json:"timingDetail,omitempty"`
}

// ToDomain converts the payload to a domain.GenerationRequest.
func (r GenerateIdeaRequest) ToDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		VideoFocus:    r.VideoFocus,
		VideoLength:   r.VideoLength,
		TemplateStyle: r.TemplateStyle,
		ContentTone:   r.ContentTone,
		TitleTemplate: r.TitleTemplate,
		ContentType:   domain.ContentType(r.ContentType),
		TimingDetail:  r.TimingDetail,
	}
}

// IdeaContentPayload is the editable content of an idea. The category,
// subcategory and length always come from the generation request, so they
// are not accepted here.
type IdeaContentPayload struct {
	Title               string   `json:"title"               validate:"required,max=300"`
	Outline             []string `json:"outline"             validate:"required,min=1,max=50,dive,max=5000"`
	MidVideoMention     string   `json:"midVideoMention"     validate:"max=2000"`
	EndVideoMention     string   `json:"endVideoMention"     validate:"max=2000"`
	ThumbnailIdea       string   `json:"thumbnailIdea"       validate:"max=2000"`
	InteractionQuestion string   `json:"interactionQuestion" validate:"max=2000"`
}

// UpdateIdeaRequest is the payload of PUT /api/ideas/{id}. Omitted fields
// are left unchanged.
type UpdateIdeaRequest struct {
	Content *IdeaContentPayload `json:"content,omitempty"`
	Notes   *string             `json:"notes,omitempty"   validate:"omitempty,max=5000"`
	Status  *string             `json:"status,omitempty"  validate:"omitempty,idea_status"`
}

// ToUpdate converts the payload to a service.IdeaUpdate.
func (r UpdateIdeaRequest) ToUpdate() service.IdeaUpdate {
	var update service.IdeaUpdate
	if r.Content != nil {
		update.Content = &domain.VideoIdeaContent{
			Title:               r.Content.Title,
			Outline:             r.Content.Outline,
			MidVideoMention:     r.Content.MidVideoMention,
			EndVideoMention:     r.Content.EndVideoMention,
			ThumbnailIdea:       r.Content.ThumbnailIdea,
			InteractionQuestion: r.Content.InteractionQuestion,
		}
	}
	update.Notes = r.Notes
	if r.Status != nil {
		status := domain.IdeaStatus(*r.Status)
		update.Status = &status
	}
	return update
}

// ScheduleIdeaRequest is the payload of POST /api/ideas/{id}/schedule. A
// null or missing date removes the idea from the calendar.
type ScheduleIdeaRequest struct {
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// IdeaResponse is the API representation of an idea.
type IdeaResponse struct {
	ID           uuid.UUID                `json:"id"`
	Request      domain.GenerationRequest `json:"request"`
	Content      domain.VideoIdeaContent  `json:"content"`
	Source       domain.IdeaSource        `json:"source"`
	Status       domain.IdeaStatus        `json:"status"`
	ScheduledFor *string                  `json:"scheduledFor,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// IdeaListResponse wraps a page of ideas.
type IdeaListResponse struct {
	Ideas  []IdeaResponse `json:"ideas"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CalendarResponse lists the ideas scheduled between From and To.
type CalendarResponse struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Ideas []IdeaResponse `json:"ideas"`
}

// OptionsResponse lists the choices offered by the generation form.
type OptionsResponse struct {
	Categories     []string             `json:"categories"`
	VideoLengths   []string             `json:"videoLengths"`
	TemplateStyles []string             `json:"templateStyles"`
	ContentTones   []string             `json:"contentTones"`
	TitleTemplates []string             `json:"titleTemplates"`
	ContentTypes   []domain.ContentType `json:"contentTypes"`
}

// QuotaResponse reports today's generation usage. Limit and Remaining are
// omitted when the plan is unlimited.
type QuotaResponse struct {
	Used      int  `json:"used"`
	Limit     *int `json:"limit,omitempty"`
	Remaining *int `json:"remaining,omitempty"`
}

// AccountResponse describes the authenticated user.
type AccountResponse struct {
	UserID    uuid.UUID     `json:"user_id"`
	Email     string        `json:"email"`
	Plan      domain.Plan   `json:"plan"`
	Quota     QuotaResponse `json:"quota"`
	CreatedAt time.Time     `json:"created_at"`
}

func ideaToResponse(idea *domain.Idea) IdeaResponse {
	resp := IdeaResponse{
		ID:        idea.ID,
		Request:   idea.Request,
		Content:   idea.Content,
		Source:    idea.Source,
		Status:    idea.Status,
		Notes:     idea.Notes,
		CreatedAt: idea.CreatedAt,
		UpdatedAt: idea.UpdatedAt,
	}
	if idea.ScheduledFor != nil {
		date := idea.ScheduledFor.UTC().Format(DateLayout)
		resp.ScheduledFor = &date
	}
	if resp.Content.Outline == nil {
		resp.Content.Outline = []string{}
	}
	return resp
}

func ideasToResponse(ideas []*domain.Idea) []IdeaResponse {
	out := make([]IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, ideaToResponse(idea))
	}
	return out
}

func accountToResponse(account *service.Account) AccountResponse {
	resp := AccountResponse{
		UserID:    account.User.ID,
		Email:     account.User.Email,
		Plan:      account.User.Plan,
		CreatedAt: account.User.CreatedAt,
		Quota:     QuotaResponse{Used: account.Quota.Used},
	}
	if account.Quota.Limit > 0 {
		limit := account.Quota.Limit
		remaining := account.Quota.Remaining()
		resp.Quota.Limit = &limit
		resp.Quota.Remaining = &remaining
	}
	return resp
}
