package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/api/shared"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/service"
	"github.com/phrazzld/ideaflow-api/internal/store"
	"github.com/stretchr/testify/require"
)

// memIdeaRepository is an in-memory service.IdeaRepository.
type memIdeaRepository struct {
	mu    sync.Mutex
	ideas map[uuid.UUID]*domain.Idea
}

func newMemIdeaRepository(ideas ...*domain.Idea) *memIdeaRepository {
	repo := &memIdeaRepository{ideas: make(map[uuid.UUID]*domain.Idea)}
	for _, idea := range ideas {
		repo.ideas[idea.ID] = idea
	}
	return repo
}

func (m *memIdeaRepository) Create(_ context.Context, idea *domain.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ideas[idea.ID] = idea
	return nil
}

func (m *memIdeaRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idea, ok := m.ideas[id]
	if !ok {
		return nil, store.ErrIdeaNotFound
	}
	return idea, nil
}

func (m *memIdeaRepository) ListByUser(
	_ context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Idea
	for _, idea := range m.ideas {
		if idea.UserID == userID {
			out = append(out, idea)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*domain.Idea{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memIdeaRepository) ListScheduled(
	_ context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Idea{}
	for _, idea := range m.ideas {
		if idea.UserID != userID || idea.ScheduledFor == nil {
			continue
		}
		if day := *idea.ScheduledFor; !day.Before(from) && !day.After(to) {
			out = append(out, idea)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(*out[j].ScheduledFor) })
	return out, nil
}

func (m *memIdeaRepository) Update(_ context.Context, idea *domain.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ideas[idea.ID]; !ok {
		return store.ErrIdeaNotFound
	}
	m.ideas[idea.ID] = idea
	return nil
}

func (m *memIdeaRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ideas[id]; !ok {
		return store.ErrIdeaNotFound
	}
	delete(m.ideas, id)
	return nil
}

func (m *memIdeaRepository) InTx(
	ctx context.Context,
	fn func(ctx context.Context, repo service.IdeaRepository) error,
) error {
	return fn(ctx, m)
}

// doJSON runs handler for a request with an optional JSON body, an optional
// authenticated user and chi URL params.
func doJSON(
	t *testing.T,
	handler http.HandlerFunc,
	method, target string,
	body interface{},
	userID uuid.UUID,
	params map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if userID != uuid.Nil {
		ctx = shared.WithUserID(ctx, userID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
