package chat

import (
	"fmt"
	"testing"
)

func TestAppendPreservesOrder(t *testing.T) {
	b := NewBuffer(20)

	b.Append(RoleUser, "first")
	b.Append(RoleAssistant, "second")

	msgs := b.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Content != "first" {
		t.Fatalf("unexpected first msg: role=%q content=%q", msgs[0].Role, msgs[0].Content)
	}
	if msgs[1].Role != RoleAssistant || msgs[1].Content != "second" {
		t.Fatalf("unexpected second msg: role=%q content=%q", msgs[1].Role, msgs[1].Content)
	}
}

func TestTrimKeepsMostRecent(t *testing.T) {
	b := NewBuffer(4)

	for i := 0; i < 10; i++ {
		b.Append(RoleUser, fmt.Sprintf("msg-%d", i))
	}
	b.Trim()

	if b.Len() != 4 {
		t.Fatalf("expected 4 messages after trim, got %d", b.Len())
	}
	msgs := b.Messages()
	for i, m := range msgs {
		want := fmt.Sprintf("msg-%d", 6+i)
		if m.Content != want {
			t.Fatalf("msg %d: expected %q, got %q", i, want, m.Content)
		}
	}
}

func TestTrimNoopWhenWithinBound(t *testing.T) {
	b := NewBuffer(5)
	b.Append(RoleUser, "only")
	b.Trim()
	if b.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", b.Len())
	}
}

func TestBuildRequestShape(t *testing.T) {
	b := NewBuffer(20)
	b.Append(RoleUser, "hello")
	b.Append(RoleAssistant, "hi")

	req := b.BuildRequest("be helpful")

	if len(req) != b.Len()+1 {
		t.Fatalf("expected %d entries, got %d", b.Len()+1, len(req))
	}
	if req[0].Role != string(RoleSystem) || req[0].Content != "be helpful" {
		t.Fatalf("unexpected system entry: role=%q content=%q", req[0].Role, req[0].Content)
	}
	if req[1].Content != "hello" || req[2].Content != "hi" {
		t.Fatalf("buffer contents not in order: %+v", req[1:])
	}

	// pure: the buffer itself must not grow or change
	if b.Len() != 2 {
		t.Fatalf("BuildRequest mutated the buffer: len=%d", b.Len())
	}
}
