// Package gormstore keeps the message log in an embedded SQLite database
// through GORM. It serves deployments that run without a MongoDB server and
// every store-backed test.
package gormstore

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store"
)

type messageRow struct {
	ID         string    `gorm:"primaryKey;size:26"` // ULID length
	SessionID  string    `gorm:"size:36;index:idx_msg_session_created,priority:1;not null"`
	Role       string    `gorm:"type:varchar(16);not null"`
	Content    string    `gorm:"type:text;not null"`
	TokenUsage *int
	CreatedAt  time.Time `gorm:"index:idx_msg_session_created,priority:2"`
}

func (messageRow) TableName() string { return "messages" }

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&messageRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) InsertMessage(ctx context.Context, rec store.Record) error {
	return s.db.WithContext(ctx).Create(&messageRow{
		ID:         rec.ID,
		SessionID:  rec.SessionID,
		Role:       rec.Role,
		Content:    rec.Content,
		TokenUsage: rec.TokenUsage,
		CreatedAt:  rec.CreatedAt,
	}).Error
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]store.Record, error) {
	var rows []messageRow
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	recs := make([]store.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, store.Record{
			ID:         r.ID,
			SessionID:  r.SessionID,
			Role:       r.Role,
			Content:    r.Content,
			TokenUsage: r.TokenUsage,
			CreatedAt:  r.CreatedAt,
		})
	}
	return recs, nil
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

var _ store.Store = (*Store)(nil)
