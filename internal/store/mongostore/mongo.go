// Package mongostore keeps the message log in a MongoDB collection, one
// document per message, indexed by (session_id, created_at).
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store"
)

const collectionName = "conversations"

type messageDoc struct {
	ID         string    `bson:"_id"`
	SessionID  string    `bson:"session_id"`
	Role       string    `bson:"role"`
	Content    string    `bson:"content"`
	TokenUsage *int      `bson:"token_usage"`
	CreatedAt  time.Time `bson:"created_at"`
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials the server, verifies it is reachable and ensures the
// retrieval index. Any failure here is a startup failure for the caller.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(database).Collection(collectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{client: client, coll: coll}, nil
}

func (s *Store) InsertMessage(ctx context.Context, rec store.Record) error {
	_, err := s.coll.InsertOne(ctx, messageDoc{
		ID:         rec.ID,
		SessionID:  rec.SessionID,
		Role:       rec.Role,
		Content:    rec.Content,
		TokenUsage: rec.TokenUsage,
		CreatedAt:  rec.CreatedAt,
	})
	return err
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]store.Record, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []store.Record
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		recs = append(recs, store.Record{
			ID:         doc.ID,
			SessionID:  doc.SessionID,
			Role:       doc.Role,
			Content:    doc.Content,
			TokenUsage: doc.TokenUsage,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return recs, cur.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
