package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels records the last GenerateContent call and answers with a canned
// response.
type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model       string
	contents    []*genai.Content
	config      *genai.GenerateContentConfig
	hasDeadline bool
	calls       int
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	_, f.hasDeadline = ctx.Deadline()
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func newTestClient(t *testing.T, models contentGenerator, timeoutSeconds int) *Client {
	t.Helper()
	_, log := logger.NewTestLogger(t)
	return newClient(models, config.LLMConfig{RequestTimeoutSeconds: timeoutSeconds}, log)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	client, err := NewClient(context.Background(), config.LLMConfig{ModelName: "gemini-2.0-flash"}, nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, client)
}

func TestClientComplete(t *testing.T) {
	t.Run("sends prompt and configuration", func(t *testing.T) {
		models := &fakeModels{resp: textResponse(&genai.Part{Text: `{"title":"ok"}`})}
		client := newTestClient(t, models, 0)

		text, err := client.Complete(context.Background(), generation.CompletionRequest{
			Model:             "gemini-2.0-flash",
			SystemInstruction: "Eres un experto",
			Prompt:            "Genera una idea",
			Temperature:       0.7,
			JSON:              true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"title":"ok"}`, text)

		assert.Equal(t, 1, models.calls)
		assert.Equal(t, "gemini-2.0-flash", models.model)
		require.Len(t, models.contents, 1)
		require.Len(t, models.contents[0].Parts, 1)
		assert.Equal(t, "Genera una idea", models.contents[0].Parts[0].Text)

		require.NotNil(t, models.config)
		require.NotNil(t, models.config.Temperature)
		assert.InDelta(t, 0.7, *models.config.Temperature, 0.0001)
		assert.Equal(t, "application/json", models.config.ResponseMIMEType)
		require.NotNil(t, models.config.SystemInstruction)
		assert.Equal(t, "Eres un experto", models.config.SystemInstruction.Parts[0].Text)
		assert.False(t, models.hasDeadline)
	})

	t.Run("plain text request", func(t *testing.T) {
		models := &fakeModels{resp: textResponse(&genai.Part{Text: "hola"})}
		client := newTestClient(t, models, 0)

		_, err := client.Complete(context.Background(), generation.CompletionRequest{Prompt: "p"})
		require.NoError(t, err)
		assert.Empty(t, models.config.ResponseMIMEType)
		assert.Nil(t, models.config.SystemInstruction)
	})

	t.Run("applies request timeout", func(t *testing.T) {
		models := &fakeModels{resp: textResponse(&genai.Part{Text: "x"})}
		client := newTestClient(t, models, 30)
		assert.Equal(t, 30*time.Second, client.timeout)

		_, err := client.Complete(context.Background(), generation.CompletionRequest{Prompt: "p"})
		require.NoError(t, err)
		assert.True(t, models.hasDeadline)
	})

	t.Run("wraps transport errors", func(t *testing.T) {
		upstream := errors.New("connection reset")
		client := newTestClient(t, &fakeModels{err: upstream}, 0)

		text, err := client.Complete(context.Background(), generation.CompletionRequest{Prompt: "p"})
		require.ErrorIs(t, err, upstream)
		assert.Empty(t, text)
	})

	t.Run("reports blocked answers", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		client := newTestClient(t, &fakeModels{resp: resp}, 0)

		_, err := client.Complete(context.Background(), generation.CompletionRequest{Prompt: "p"})
		require.ErrorIs(t, err, ErrContentBlocked)
	})
}

func TestResponseText(t *testing.T) {
	testCases := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: ErrNoCandidates,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: ErrNoCandidates,
		},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
					BlockReason: genai.BlockedReasonSafety,
				},
			},
			wantErr: ErrContentBlocked,
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: "",
		},
		{
			name: "joins text parts",
			resp: textResponse(&genai.Part{Text: `{"title":`}, &genai.Part{Text: `"x"}`}),
			want: `{"title":"x"}`,
		},
		{
			name: "skips thoughts",
			resp: textResponse(
				&genai.Part{Text: "pensando...", Thought: true},
				&genai.Part{Text: "respuesta"},
			),
			want: "respuesta",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseText(tc.resp)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
