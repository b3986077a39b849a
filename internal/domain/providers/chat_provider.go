package providers

import "context"

// ChatProvider generates a short natural-language reply from a system prompt
// and a user message. Implementations wrap an external language model; the
// assistant degrades to a template reply when none is configured.
type ChatProvider interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
