// Package generation turns a domain.GenerationRequest into a
// domain.VideoIdeaContent.
//
// Three pieces cooperate:
//
//   - PromptBuilder renders the request into a natural-language instruction
//     for an external LLM and picks a title template when the caller did not
//     supply one.
//   - IdeaGenerator sends that prompt through a CompletionClient (the Gemini
//     adapter in production), decodes the JSON answer, and falls back to the
//     offline producer on any failure. It never returns an error.
//   - Fallback synthesises a deterministic idea from the request alone.
//
// The CompletionClient interface is the boundary to the external AI service,
// so the application core does not depend on any particular SDK.
package generation
