package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/ideaflow-api/internal/api/shared"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
	"github.com/phrazzld/ideaflow-api/internal/service"
)

// IdeaHandler handles the idea library and calendar endpoints.
type IdeaHandler struct {
	ideaService service.IdeaService
	logger      *slog.Logger
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideaService service.IdeaService, logger *slog.Logger) *IdeaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdeaHandler{
		ideaService: ideaService,
		logger:      logger.With("component", "idea_handler"),
	}
}

// GenerateIdea handles POST /api/ideas/generate. The idea is always created;
// its source tells whether the language model or the fallback produced it.
func (h *IdeaHandler) GenerateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateIdeaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	idea, err := h.ideaService.GenerateIdea(r.Context(), userID, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate idea")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).DebugContext(r.Context(), "idea created",
		"idea_id", idea.ID, "source", idea.Source)
	shared.RespondWithJSON(w, r, http.StatusCreated, ideaToResponse(idea))
}

// ListIdeas handles GET /api/ideas?limit=&offset=.
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if limit == 0 {
		limit = service.DefaultListLimit
	}
	limit = min(limit, service.MaxListLimit)

	ideas, err := h.ideaService.ListIdeas(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ideas")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IdeaListResponse{
		Ideas:  ideasToResponse(ideas),
		Limit:  limit,
		Offset: offset,
	})
}

// GetIdea handles GET /api/ideas/{id}.
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	userID, ideaID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	idea, err := h.ideaService.GetIdea(r.Context(), userID, ideaID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get idea")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ideaToResponse(idea))
}

// UpdateIdea handles PUT /api/ideas/{id}.
func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ideaID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateIdeaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	idea, err := h.ideaService.UpdateIdea(r.Context(), userID, ideaID, req.ToUpdate())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update idea")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ideaToResponse(idea))
}

// ScheduleIdea handles POST /api/ideas/{id}/schedule.
func (h *IdeaHandler) ScheduleIdea(w http.ResponseWriter, r *http.Request) {
	userID, ideaID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ScheduleIdeaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date, "date")
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		date = &parsed
	}

	idea, err := h.ideaService.ScheduleIdea(r.Context(), userID, ideaID, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to schedule idea")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ideaToResponse(idea))
}

// DeleteIdea handles DELETE /api/ideas/{id}.
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID, ideaID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ideaService.DeleteIdea(r.Context(), userID, ideaID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete idea")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Calendar handles GET /api/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *IdeaHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	from, err := queryDate(r, "from")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ideas, err := h.ideaService.Calendar(r.Context(), userID, from, to)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load calendar")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CalendarResponse{
		From:  from.Format(DateLayout),
		To:    to.Format(DateLayout),
		Ideas: ideasToResponse(ideas),
	})
}
