package chat

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store"
)

var (
	ErrInputTooLong   = errors.New("chat: input too long")
	ErrUnknownSession = errors.New("chat: unknown session")
)

// Service runs one turn at a time per session: validate, append the user
// message, mirror it to the store when one is configured, call the provider,
// append the reply, trim. Provider failures abort only the assistant side of
// the turn; the user message stays and is trimmed normally.
type Service struct {
	sessions     *Sessions
	provider     ai.Provider
	store        store.Store // nil for the ephemeral deployment
	systemPrompt string
	maxInputLen  int
	log          *zap.Logger
}

func NewService(sessions *Sessions, provider ai.Provider, st store.Store, systemPrompt string, maxInputLen int, log *zap.Logger) *Service {
	if maxInputLen <= 0 {
		maxInputLen = 2000
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sessions:     sessions,
		provider:     provider,
		store:        st,
		systemPrompt: systemPrompt,
		maxInputLen:  maxInputLen,
		log:          log,
	}
}

// Resume returns the session for id, creating it when absent. A freshly
// created session with a store behind it loads its full history verbatim,
// without trimming: a rehydrated buffer may start above the cap and comes
// back into bound at the end of the next completed turn.
func (s *Service) Resume(ctx context.Context, id string) (*Session, error) {
	sess, created := s.sessions.GetOrCreate(id)
	if !created || s.store == nil {
		return sess, nil
	}

	recs, err := s.store.ListBySession(ctx, sess.ID)
	if err != nil {
		// leave no half-hydrated session behind; a retry starts clean
		s.sessions.remove(sess.ID)
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, r := range recs {
		sess.buffer.AppendMessage(Message{
			Role:       Role(r.Role),
			Content:    r.Content,
			TokenUsage: r.TokenUsage,
			CreatedAt:  r.CreatedAt,
		})
	}
	if len(recs) > 0 {
		s.log.Info("session rehydrated",
			zap.String("session_id", sess.ID),
			zap.Int("messages", len(recs)))
	}
	return sess, nil
}

// Turn handles one user submission to completion. It returns the assistant
// message on success; on a provider failure it returns one of the ai package
// sentinels and the turn ends with no assistant message appended.
func (s *Service) Turn(ctx context.Context, sessionID, text string) (Message, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return Message{}, ErrUnknownSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if utf8.RuneCountInString(text) > s.maxInputLen {
		return Message{}, ErrInputTooLong
	}

	userMsg := sess.buffer.Append(RoleUser, text)
	s.persist(ctx, sess.ID, userMsg)

	// Trim runs even when the provider fails, so the user message
	// contributed this turn is still subject to the cap.
	defer sess.buffer.Trim()

	start := time.Now()
	completion, err := s.provider.Complete(ctx, sess.buffer.BuildRequest(s.systemPrompt))
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			s.log.Warn("rate limit hit", zap.String("session_id", sess.ID))
		case errors.Is(err, ai.ErrTimedOut):
			s.log.Error("completion request timed out", zap.String("session_id", sess.ID))
		default:
			s.log.Error("completion request failed",
				zap.String("session_id", sess.ID), zap.Error(err))
		}
		return Message{}, err
	}

	s.log.Info("completion",
		zap.String("session_id", sess.ID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("tokens_used", completion.TotalTokens))

	tokens := completion.TotalTokens
	reply := Message{
		Role:       RoleAssistant,
		Content:    completion.Content,
		TokenUsage: &tokens,
		CreatedAt:  time.Now().UTC(),
	}
	sess.buffer.AppendMessage(reply)
	s.persist(ctx, sess.ID, reply)

	return reply, nil
}

// History returns the session's buffered transcript in order.
func (s *Service) History(sessionID string) ([]Message, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrUnknownSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.buffer.Messages(), nil
}

// persist mirrors one message into the durable log. The log is a projection
// of the buffer; a failed write is reported but does not fail the turn.
func (s *Service) persist(ctx context.Context, sessionID string, msg Message) {
	if s.store == nil {
		return
	}
	rec := store.NewRecord(sessionID, string(msg.Role), msg.Content, msg.TokenUsage)
	rec.CreatedAt = msg.CreatedAt
	if err := s.store.InsertMessage(ctx, rec); err != nil {
		s.log.Error("store write failed",
			zap.String("session_id", sessionID),
			zap.String("role", string(msg.Role)),
			zap.Error(err))
	}
}
