// Package store defines the durable message log. Records are append-only and
// partitioned by session; the log is never trimmed, so it may hold more
// history than the in-memory buffer ever does.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

type Record struct {
	ID         string
	SessionID  string
	Role       string
	Content    string
	TokenUsage *int
	CreatedAt  time.Time
}

type Store interface {
	// InsertMessage appends one record. CreatedAt and ID are filled by the
	// caller via NewRecord.
	InsertMessage(ctx context.Context, rec Record) error

	// ListBySession returns the full history for a session, ascending by
	// creation time.
	ListBySession(ctx context.Context, sessionID string) ([]Record, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NewRecord stamps a fresh record with a ULID and the current time.
func NewRecord(sessionID, role, content string, tokenUsage *int) Record {
	now := time.Now().UTC()
	return Record{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		SessionID:  sessionID,
		Role:       role,
		Content:    content,
		TokenUsage: tokenUsage,
		CreatedAt:  now,
	}
}
