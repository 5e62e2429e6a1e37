package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/api"
	"github.com/phrazzld/ideaflow-api/internal/api/shared"
	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/mocks"
	"github.com/phrazzld/ideaflow-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIdeaService answers ListIdeas and panics on anything else.
type stubIdeaService struct {
	service.IdeaService
	listCalls []uuid.UUID
}

func (s *stubIdeaService) ListIdeas(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Idea, error) {
	s.listCalls = append(s.listCalls, userID)
	return []*domain.Idea{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockJWTService, *stubIdeaService) {
	t.Helper()
	jwtService := &mocks.MockJWTService{}
	ideas := &stubIdeaService{}
	verifier := &mocks.MockPasswordVerifier{}

	router := newRouter(routerDeps{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		authConfig:  &config.AuthConfig{TokenLifetimeMinutes: 60},
		jwtService:  jwtService,
		userService: service.NewUserService(mocks.NewMockUserStore(), verifier, verifier, nil, nil),
		ideaService: ideas,
	})
	return router, jwtService, ideas
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Len(t, rec.Header().Get(shared.TraceIDHeader), 32)
}

func TestRouterMetrics(t *testing.T) {
	router, _, _ := newTestRouter(t)
	serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ideaflow_http_requests_total")
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router, _, ideas := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/ideas/generate"},
		{http.MethodGet, "/api/ideas"},
		{http.MethodGet, "/api/ideas/" + uuid.NewString()},
		{http.MethodPut, "/api/ideas/" + uuid.NewString()},
		{http.MethodDelete, "/api/ideas/" + uuid.NewString()},
		{http.MethodPost, "/api/ideas/" + uuid.NewString() + "/schedule"},
		{http.MethodGet, "/api/calendar"},
		{http.MethodGet, "/api/account"},
	}
	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	assert.Empty(t, ideas.listCalls)
}

func TestRouterAuthenticatedRequest(t *testing.T) {
	router, jwtService, ideas := newTestRouter(t)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	req.Header.Set("Authorization", "Bearer "+jwtService.AccessTokenFor(userID))

	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []uuid.UUID{userID}, ideas.listCalls)
}

func TestRouterRegisterThenLogin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := `{"email":"creator@example.com","password":"password1234567"}`
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEqual(t, uuid.Nil, registered.UserID)

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body)))
	// MockPasswordVerifier rejects every password unless told otherwise.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterGenerationOptionsArePublic(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/generation/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var options api.OptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	assert.Equal(t, domain.Categories, options.Categories)
}

func TestRouterRateLimitsAuthEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	var last int
	for i := 0; i <= authRateLimit; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{}`))
		last = serve(router, req).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
