// Package llm wraps the hosted model used for natural-language-to-SQL
// translation and result interpretation.
package llm

import "context"

// Client is a minimal completion interface over a hosted model.
type Client interface {
	// Complete sends a system and user prompt and returns the response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
