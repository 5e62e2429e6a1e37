// Package gemini provides a generation.CompletionClient backed by Google's
// Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture.
// It only moves text in and out of the Gemini API: prompt construction,
// response decoding and the offline fallback all live in the generation
// package, so the adapter never sees domain types.
//
// A Client makes exactly one GenerateContent call per Complete. When the
// configured request timeout is positive it bounds that call; otherwise the
// caller's context is the only limit.
package gemini
