package chat

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation. Immutable once created.
type Message struct {
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	TokenUsage *int      `json:"token_usage,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
