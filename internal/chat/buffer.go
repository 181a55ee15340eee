package chat

import (
	"time"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
)

// Buffer holds one session's ordered message history, bounded to maxLen.
// The system prompt is never stored here; it is prepended at request-build
// time only. A buffer loaded from the store may start above maxLen until the
// next Trim.
type Buffer struct {
	messages []Message
	maxLen   int
}

func NewBuffer(maxLen int) *Buffer {
	if maxLen <= 0 {
		maxLen = 20
	}
	return &Buffer{maxLen: maxLen}
}

// Append adds a message to the end of the history and returns it.
func (b *Buffer) Append(role Role, content string) Message {
	msg := Message{Role: role, Content: content, CreatedAt: time.Now().UTC()}
	b.messages = append(b.messages, msg)
	return msg
}

// AppendMessage adds an already-built message, preserving its metadata.
func (b *Buffer) AppendMessage(msg Message) {
	b.messages = append(b.messages, msg)
}

// Trim discards the oldest messages until the history is back within bound.
// It runs at the end of a turn, never before, so a user message is not
// dropped before its reply is produced.
func (b *Buffer) Trim() {
	if len(b.messages) > b.maxLen {
		b.messages = b.messages[len(b.messages)-b.maxLen:]
	}
}

// BuildRequest returns the provider payload: the system prompt followed by
// every buffered message in order. It does not mutate the buffer.
func (b *Buffer) BuildRequest(systemPrompt string) []ai.Message {
	out := make([]ai.Message, 0, len(b.messages)+1)
	out = append(out, ai.Message{Role: string(RoleSystem), Content: systemPrompt})
	for _, m := range b.messages {
		out = append(out, ai.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func (b *Buffer) Len() int { return len(b.messages) }

// Messages returns a copy of the history.
func (b *Buffer) Messages() []Message {
	return append([]Message(nil), b.messages...)
}
