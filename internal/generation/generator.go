package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/ideaflow-api/internal/domain"
)

// Defaults used when no option overrides them.
const (
	DefaultModel               = "gemini-2.0-flash"
	DefaultTemperature float32 = 0.7
)

// CompletionRequest is a single call to a text-completion service.
type CompletionRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       float32
	// JSON asks the service to answer with a JSON document.
	JSON bool
}

// CompletionClient is the boundary to an external text-completion service.
type CompletionClient interface {
	// Complete sends req and returns the text of the answer. An empty string
	// with a nil error means the service produced no content.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator produces video ideas. Implementations never fail: when the real
// path is unavailable they return a synthesised idea.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) domain.VideoIdeaContent
	GenerateWithOutcome(ctx context.Context, req domain.GenerationRequest) Outcome
}

// Outcome is the result of a generation together with the path that produced it.
type Outcome struct {
	Content domain.VideoIdeaContent
	Source  domain.IdeaSource
	// FallbackReason is set when Source is domain.IdeaSourceFallback.
	FallbackReason error
	// TitleTemplate is the template the prompt asked the model to follow.
	TitleTemplate string
	Duration      time.Duration
}

// IdeaGenerator implements Generator on top of a CompletionClient, falling
// back to Fallback on any failure.
type IdeaGenerator struct {
	client      CompletionClient
	logger      *slog.Logger
	prompts     *PromptBuilder
	model       string
	temperature float32
}

var _ Generator = (*IdeaGenerator)(nil)

// Option configures an IdeaGenerator.
type Option func(*IdeaGenerator)

// WithModel sets the model identifier sent with every completion request.
func WithModel(model string) Option {
	return func(g *IdeaGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float32) Option {
	return func(g *IdeaGenerator) {
		g.temperature = temperature
	}
}

// WithPromptBuilder replaces the default prompt builder.
func WithPromptBuilder(b *PromptBuilder) Option {
	return func(g *IdeaGenerator) {
		if b != nil {
			g.prompts = b
		}
	}
}

// NewIdeaGenerator creates an IdeaGenerator. A nil client is valid and means
// no credential is configured: every call goes straight to the fallback.
func NewIdeaGenerator(client CompletionClient, logger *slog.Logger, opts ...Option) *IdeaGenerator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &IdeaGenerator{
		client:      client,
		logger:      logger.With("component", "idea_generator"),
		prompts:     NewPromptBuilder(),
		model:       DefaultModel,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a video idea for req. It never fails.
func (g *IdeaGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.VideoIdeaContent {
	return g.GenerateWithOutcome(ctx, req).Content
}

// GenerateWithOutcome behaves like Generate and also reports which path
// produced the content and why the fallback was used, if it was.
func (g *IdeaGenerator) GenerateWithOutcome(ctx context.Context, req domain.GenerationRequest) Outcome {
	start := time.Now()

	if g.client == nil {
		g.logger.WarnContext(ctx, "No completion credential configured, using fallback idea",
			"category", req.Category,
			"subcategory", req.Subcategory)
		return g.fallback(req, ErrNoCredential, start)
	}

	prompt, titleTemplate := g.prompts.Build(req)
	g.logger.DebugContext(ctx, "Requesting idea from language model",
		"model", g.model,
		"prompt_length", len(prompt),
		"title_template", titleTemplate)

	text, err := g.client.Complete(ctx, CompletionRequest{
		Model:             g.model,
		SystemInstruction: SystemInstruction,
		Prompt:            prompt,
		Temperature:       g.temperature,
		JSON:              true,
	})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrCompletionFailed, err)
		g.logger.ErrorContext(ctx, "Language model call failed, using fallback idea",
			"error", err,
			"model", g.model)
		return g.fallback(req, err, start)
	}

	content, err := decodeIdea(text)
	if err != nil {
		g.logger.ErrorContext(ctx, "Unusable language model response, using fallback idea",
			"error", err,
			"model", g.model,
			"response_length", len(text))
		return g.fallback(req, err, start)
	}

	// These fields always reflect the request, whatever the model echoed.
	content.Category = req.Category
	content.Subcategory = req.Subcategory
	content.VideoLength = req.VideoLength

	duration := time.Since(start)
	g.logger.InfoContext(ctx, "Generated idea with language model",
		"model", g.model,
		"outline_entries", len(content.Outline),
		"duration_ms", duration.Milliseconds())

	return Outcome{
		Content:       content,
		Source:        domain.IdeaSourceAI,
		TitleTemplate: titleTemplate,
		Duration:      duration,
	}
}

func (g *IdeaGenerator) fallback(req domain.GenerationRequest, reason error, start time.Time) Outcome {
	titleTemplate := req.TitleTemplate
	if titleTemplate == "" {
		titleTemplate = DefaultTitleTemplate
	}
	return Outcome{
		Content:        Fallback(req),
		Source:         domain.IdeaSourceFallback,
		FallbackReason: reason,
		TitleTemplate:  titleTemplate,
		Duration:       time.Since(start),
	}
}

// decodeIdea parses a model answer into a VideoIdeaContent. Models sometimes
// wrap the object in prose or a code fence, so only the outermost braces are
// decoded. A title and at least one outline entry are required; other fields
// are taken as returned.
func decodeIdea(text string) (domain.VideoIdeaContent, error) {
	var content domain.VideoIdeaContent

	text = strings.TrimSpace(text)
	if text == "" {
		return content, ErrEmptyResponse
	}

	object, ok := extractJSONObject(text)
	if !ok {
		return content, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}

	if err := json.Unmarshal([]byte(object), &content); err != nil {
		return content, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if strings.TrimSpace(content.Title) == "" {
		return content, fmt.Errorf("%w: missing title", ErrIncompleteResponse)
	}
	if len(content.Outline) == 0 {
		return content, fmt.Errorf("%w: missing outline", ErrIncompleteResponse)
	}

	return content, nil
}

func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
