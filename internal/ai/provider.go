package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is one generated assistant message plus token accounting.
type Completion struct {
	Content     string
	TotalTokens int
}

type Provider interface {
	Complete(ctx context.Context, messages []Message) (Completion, error)
}
