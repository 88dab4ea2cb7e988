// Package llm holds the text-summarization providers. Both providers
// answer the same one-shot prompt; picking one is a config decision.
package llm

import "context"

// Summarizer produces a short summary of the given text. Failures
// (quota, auth, malformed response) are returned as-is; callers decide
// how visible to make them.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const summaryPrompt = "Summarize the following text:\n\n"
