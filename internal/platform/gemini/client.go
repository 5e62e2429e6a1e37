package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
	"google.golang.org/genai"
)

// jsonMIMEType asks the model for a bare JSON document.
const jsonMIMEType = "application/json"

// contentGenerator is the subset of genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements generation.CompletionClient using the Gemini API.
type Client struct {
	models  contentGenerator
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.CompletionClient = (*Client)(nil)

// NewClient creates a Client for the Gemini API backend.
// It returns ErrMissingAPIKey when cfg carries no key; callers that want the
// offline fallback should not construct a Client at all.
func NewClient(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if log == nil {
		log = slog.Default()
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return newClient(genaiClient.Models, cfg, log), nil
}

func newClient(models contentGenerator, cfg config.LLMConfig, log *slog.Logger) *Client {
	return &Client{
		models:  models,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  log.With("component", "gemini_client"),
	}
}

// Complete sends req to the Gemini API and returns the text of the first
// candidate.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, req.Model, contents, buildConfig(req))
	if err != nil {
		log.ErrorContext(ctx, "Gemini API call failed",
			"model", req.Model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		log.WarnContext(ctx, "Gemini API returned no usable text",
			"model", req.Model,
			"error", err)
		return "", err
	}

	log.DebugContext(ctx, "Gemini API call successful",
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))
	return text, nil
}

func buildConfig(req generation.CompletionRequest) *genai.GenerateContentConfig {
	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = jsonMIMEType
	}
	return cfg
}

// responseText concatenates the text parts of the first candidate, skipping
// thought parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNoCandidates
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: answer blocked by safety filters", ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
