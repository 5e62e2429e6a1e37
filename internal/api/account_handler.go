package api

import (
	"net/http"

	"github.com/phrazzld/ideaflow-api/internal/api/shared"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/service"
)

// AccountHandler serves the authenticated user's account.
type AccountHandler struct {
	userService service.UserService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(userService service.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

// GetAccount handles GET /api/account.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	account, err := h.userService.GetAccount(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// GenerationOptions handles GET /api/generation/options. The catalogs are
// static, so any client may read them.
func GenerationOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, OptionsResponse{
		Categories:     domain.Categories,
		VideoLengths:   domain.VideoLengths,
		TemplateStyles: domain.TemplateStyles,
		ContentTones:   domain.ContentTones,
		TitleTemplates: generation.TitleTemplates,
		ContentTypes:   domain.ContentTypes,
	})
}
