// Package mocks provides shared mock implementations of the interfaces used
// across the application.
//
// Each mock has function fields for custom behavior and falls back to simple
// defaults when they are unset:
//
//	client := &mocks.MockCompletionClient{
//	    CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
//	        return `{"title": "..."}`, nil
//	    },
//	}
package mocks
