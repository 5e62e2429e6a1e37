package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/mocks"
	"github.com/phrazzld/ideaflow-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGeneratePayload() map[string]interface{} {
	return map[string]interface{}{
		"category":      "Gaming",
		"subcategory":   "Speedrunning",
		"videoFocus":    "Any% route for a classic platformer",
		"videoLength":   "Medium (8-15 minutes)",
		"templateStyle": "Tutorial",
		"contentTone":   "Energetic",
	}
}

func testIdea(t *testing.T, userID uuid.UUID, title string) *domain.Idea {
	t.Helper()
	req := domain.GenerationRequest{
		Category:      "Gaming",
		Subcategory:   "Speedrunning",
		VideoFocus:    "routes",
		VideoLength:   "Short (under 5 minutes)",
		TemplateStyle: "Tutorial",
		ContentTone:   "Casual",
	}
	idea, err := domain.NewIdea(userID, req, domain.VideoIdeaContent{
		Title:       title,
		Outline:     []string{"Intro", "Route", "Outro"},
		Category:    req.Category,
		Subcategory: req.Subcategory,
		VideoLength: req.VideoLength,
	}, domain.IdeaSourceAI)
	require.NoError(t, err)
	return idea
}

func newTestIdeaHandler(t *testing.T, repo *memIdeaRepository, generator *mocks.MockGenerator) *IdeaHandler {
	t.Helper()
	if generator == nil {
		generator = &mocks.MockGenerator{}
	}
	ideaService, err := service.NewIdeaService(repo, mocks.NewMockUserStore(), generator, nil, nil)
	require.NoError(t, err)
	return NewIdeaHandler(ideaService, nil)
}

func TestGenerateIdea(t *testing.T) {
	userID := uuid.New()

	t.Run("fallback idea is created", func(t *testing.T) {
		repo := newMemIdeaRepository()
		handler := newTestIdeaHandler(t, repo, nil)

		rec := doJSON(t, handler.GenerateIdea, http.MethodPost, "/api/ideas/generate",
			validGeneratePayload(), userID, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decodeBody[IdeaResponse](t, rec)
		assert.Equal(t, domain.IdeaSourceFallback, resp.Source)
		assert.Equal(t, domain.IdeaStatusDraft, resp.Status)
		assert.Equal(t, "Gaming", resp.Content.Category)
		assert.Equal(t, "Speedrunning", resp.Content.Subcategory)
		assert.Equal(t, "Medium (8-15 minutes)", resp.Content.VideoLength)
		assert.NotEmpty(t, resp.Content.Title)
		assert.NotEmpty(t, resp.Content.Outline)
		assert.Nil(t, resp.ScheduledFor)

		stored, err := repo.GetByID(t.Context(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, userID, stored.UserID)
	})

	t.Run("language model idea is created", func(t *testing.T) {
		generator := &mocks.MockGenerator{Outcome: &generation.Outcome{
			Content: domain.VideoIdeaContent{
				Title:       "The 12 Minute Route Nobody Talks About",
				Outline:     []string{"Hook", "Route", "Ask"},
				Category:    "Gaming",
				Subcategory: "Speedrunning",
				VideoLength: "Medium (8-15 minutes)",
			},
			Source: domain.IdeaSourceAI,
		}}
		handler := newTestIdeaHandler(t, newMemIdeaRepository(), generator)

		payload := validGeneratePayload()
		payload["contentType"] = "fullScript"
		payload["timingDetail"] = true

		rec := doJSON(t, handler.GenerateIdea, http.MethodPost, "/api/ideas/generate", payload, userID, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decodeBody[IdeaResponse](t, rec)
		assert.Equal(t, domain.IdeaSourceAI, resp.Source)
		assert.Equal(t, "The 12 Minute Route Nobody Talks About", resp.Content.Title)
		assert.Equal(t, domain.ContentTypeFullScript, resp.Request.ContentType)
		assert.True(t, resp.Request.TimingDetail)

		require.Equal(t, 1, generator.CallCount())
		assert.Equal(t, "Any% route for a classic platformer", generator.Calls[0].VideoFocus)
	})

	tests := []struct {
		name      string
		mutate    func(map[string]interface{})
		wantError string
	}{
		{
			name:      "missing category",
			mutate:    func(p map[string]interface{}) { delete(p, "category") },
			wantError: "Invalid category: required field",
		},
		{
			name:      "empty video focus",
			mutate:    func(p map[string]interface{}) { p["videoFocus"] = "" },
			wantError: "Invalid videoFocus: required field",
		},
		{
			name:      "unknown content type",
			mutate:    func(p map[string]interface{}) { p["contentType"] = "podcast" },
			wantError: "Invalid contentType: invalid value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &mocks.MockGenerator{}
			handler := newTestIdeaHandler(t, newMemIdeaRepository(), generator)

			payload := validGeneratePayload()
			tt.mutate(payload)

			rec := doJSON(t, handler.GenerateIdea, http.MethodPost, "/api/ideas/generate", payload, userID, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantError)
			assert.Zero(t, generator.CallCount())
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		handler := newTestIdeaHandler(t, newMemIdeaRepository(), nil)
		rec := doJSON(t, handler.GenerateIdea, http.MethodPost, "/api/ideas/generate",
			validGeneratePayload(), uuid.Nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListIdeas(t *testing.T) {
	userID := uuid.New()
	older := testIdea(t, userID, "Older")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := testIdea(t, userID, "Newer")
	foreign := testIdea(t, uuid.New(), "Someone else's")

	handler := newTestIdeaHandler(t, newMemIdeaRepository(older, newer, foreign), nil)

	t.Run("newest first", func(t *testing.T) {
		rec := doJSON(t, handler.ListIdeas, http.MethodGet, "/api/ideas", nil, userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[IdeaListResponse](t, rec)
		require.Len(t, resp.Ideas, 2)
		assert.Equal(t, "Newer", resp.Ideas[0].Content.Title)
		assert.Equal(t, "Older", resp.Ideas[1].Content.Title)
		assert.Equal(t, service.DefaultListLimit, resp.Limit)
	})

	t.Run("paging", func(t *testing.T) {
		rec := doJSON(t, handler.ListIdeas, http.MethodGet, "/api/ideas?limit=1&offset=1", nil, userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[IdeaListResponse](t, rec)
		require.Len(t, resp.Ideas, 1)
		assert.Equal(t, "Older", resp.Ideas[0].Content.Title)
		assert.Equal(t, 1, resp.Offset)
	})

	t.Run("limit is capped", func(t *testing.T) {
		rec := doJSON(t, handler.ListIdeas, http.MethodGet, "/api/ideas?limit=5000", nil, userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.MaxListLimit, decodeBody[IdeaListResponse](t, rec).Limit)
	})

	t.Run("offset past the end", func(t *testing.T) {
		rec := doJSON(t, handler.ListIdeas, http.MethodGet, "/api/ideas?offset=10", nil, userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ideas":[]`)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := doJSON(t, handler.ListIdeas, http.MethodGet, "/api/ideas?limit=-1", nil, userID, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetIdea(t *testing.T) {
	userID := uuid.New()
	idea := testIdea(t, userID, "Mine")
	handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)

	tests := []struct {
		name       string
		userID     uuid.UUID
		id         string
		wantStatus int
	}{
		{name: "owner", userID: userID, id: idea.ID.String(), wantStatus: http.StatusOK},
		{name: "other user", userID: uuid.New(), id: idea.ID.String(), wantStatus: http.StatusForbidden},
		{name: "unknown id", userID: userID, id: uuid.NewString(), wantStatus: http.StatusNotFound},
		{name: "malformed id", userID: userID, id: "not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", userID: uuid.Nil, id: idea.ID.String(), wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler.GetIdea, http.MethodGet, "/api/ideas/"+tt.id, nil, tt.userID,
				map[string]string{"id": tt.id})
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, idea.ID, decodeBody[IdeaResponse](t, rec).ID)
			}
		})
	}
}

func TestUpdateIdea(t *testing.T) {
	userID := uuid.New()

	t.Run("edits content, notes and status", func(t *testing.T) {
		idea := testIdea(t, userID, "Before")
		handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)

		payload := map[string]interface{}{
			"content": map[string]interface{}{
				"title":   "After",
				"outline": []string{"One", "Two"},
			},
			"notes":  "film on Tuesday",
			"status": "published",
		}
		params := map[string]string{"id": idea.ID.String()}

		rec := doJSON(t, handler.UpdateIdea, http.MethodPut, "/api/ideas/"+idea.ID.String(), payload, userID, params)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decodeBody[IdeaResponse](t, rec)
		assert.Equal(t, "After", resp.Content.Title)
		assert.Equal(t, []string{"One", "Two"}, resp.Content.Outline)
		assert.Equal(t, "Gaming", resp.Content.Category)
		assert.Equal(t, "film on Tuesday", resp.Notes)
		assert.Equal(t, domain.IdeaStatusPublished, resp.Status)
	})

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name:       "empty title",
			payload:    map[string]interface{}{"content": map[string]interface{}{"title": "", "outline": []string{"x"}}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown status",
			payload:    map[string]interface{}{"status": "archived"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idea := testIdea(t, userID, "Before")
			handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)

			params := map[string]string{"id": idea.ID.String()}
			rec := doJSON(t, handler.UpdateIdea, http.MethodPut, "/api/ideas/x", tt.payload, userID, params)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "Before", idea.Content.Title)
		})
	}

	t.Run("other user", func(t *testing.T) {
		idea := testIdea(t, userID, "Before")
		handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)

		params := map[string]string{"id": idea.ID.String()}
		rec := doJSON(t, handler.UpdateIdea, http.MethodPut, "/api/ideas/x",
			map[string]interface{}{"notes": "mine now"}, uuid.New(), params)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, idea.Notes)
	})
}

func TestScheduleIdea(t *testing.T) {
	userID := uuid.New()

	t.Run("schedule and unschedule", func(t *testing.T) {
		idea := testIdea(t, userID, "Plan me")
		handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)
		params := map[string]string{"id": idea.ID.String()}

		rec := doJSON(t, handler.ScheduleIdea, http.MethodPost, "/api/ideas/x/schedule",
			map[string]interface{}{"date": "2026-11-03"}, userID, params)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decodeBody[IdeaResponse](t, rec)
		require.NotNil(t, resp.ScheduledFor)
		assert.Equal(t, "2026-11-03", *resp.ScheduledFor)
		assert.Equal(t, domain.IdeaStatusScheduled, resp.Status)

		rec = doJSON(t, handler.ScheduleIdea, http.MethodPost, "/api/ideas/x/schedule",
			map[string]interface{}{"date": nil}, userID, params)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp = decodeBody[IdeaResponse](t, rec)
		assert.Nil(t, resp.ScheduledFor)
		assert.Equal(t, domain.IdeaStatusDraft, resp.Status)
	})

	t.Run("bad date", func(t *testing.T) {
		idea := testIdea(t, userID, "Plan me")
		handler := newTestIdeaHandler(t, newMemIdeaRepository(idea), nil)

		rec := doJSON(t, handler.ScheduleIdea, http.MethodPost, "/api/ideas/x/schedule",
			map[string]interface{}{"date": "03/11/2026"}, userID, map[string]string{"id": idea.ID.String()})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid date")
		assert.Nil(t, idea.ScheduledFor)
	})
}

func TestDeleteIdea(t *testing.T) {
	userID := uuid.New()
	idea := testIdea(t, userID, "Delete me")
	repo := newMemIdeaRepository(idea)
	handler := newTestIdeaHandler(t, repo, nil)
	params := map[string]string{"id": idea.ID.String()}

	rec := doJSON(t, handler.DeleteIdea, http.MethodDelete, "/api/ideas/x", nil, uuid.New(), params)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, handler.DeleteIdea, http.MethodDelete, "/api/ideas/x", nil, userID, params)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err := repo.GetByID(t.Context(), idea.ID)
	assert.Error(t, err)

	rec = doJSON(t, handler.DeleteIdea, http.MethodDelete, "/api/ideas/x", nil, userID, params)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar(t *testing.T) {
	userID := uuid.New()
	inRange := testIdea(t, userID, "In range")
	inRange.Schedule(ptrTime(time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)))
	outOfRange := testIdea(t, userID, "Out of range")
	outOfRange.Schedule(ptrTime(time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)))
	unscheduled := testIdea(t, userID, "Unscheduled")

	handler := newTestIdeaHandler(t, newMemIdeaRepository(inRange, outOfRange, unscheduled), nil)

	t.Run("ideas in range", func(t *testing.T) {
		rec := doJSON(t, handler.Calendar, http.MethodGet, "/api/calendar?from=2026-11-01&to=2026-11-30",
			nil, userID, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decodeBody[CalendarResponse](t, rec)
		assert.Equal(t, "2026-11-01", resp.From)
		assert.Equal(t, "2026-11-30", resp.To)
		require.Len(t, resp.Ideas, 1)
		assert.Equal(t, "In range", resp.Ideas[0].Content.Title)
	})

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing from", query: "?to=2026-11-30"},
		{name: "missing to", query: "?from=2026-11-01"},
		{name: "malformed date", query: "?from=Nov+1&to=2026-11-30"},
		{name: "reversed range", query: "?from=2026-11-30&to=2026-11-01"},
		{name: "range too long", query: "?from=2026-01-01&to=2028-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler.Calendar, http.MethodGet, "/api/calendar"+tt.query, nil, userID, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
