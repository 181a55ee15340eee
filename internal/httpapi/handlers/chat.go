package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/chat"
)

type createSessionReq struct {
	SessionID string `json:"session_id"`
}

// CreateSession starts a session or resumes an existing one. For the
// persistent deployment, resuming rehydrates the buffer from the store.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionReq
	_ = c.ShouldBindJSON(&req) // allow empty {}

	sess, err := h.Svc.Resume(c.Request.Context(), req.SessionID)
	if err != nil {
		h.Log.Error("session resume failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, 50001, "failed to start session")
		return
	}

	OK(c, gin.H{"session_id": sess.ID})
}

type sendMessageReq struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// SendMessage runs one turn. The provider's three failure conditions map to
// distinct user-visible messages; none are retried.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	reply, err := h.Svc.Turn(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrUnknownSession):
			Fail(c, http.StatusNotFound, 40004, "session not found")
		case errors.Is(err, chat.ErrInputTooLong):
			Fail(c, http.StatusBadRequest, 10002, "Input too long. Please shorten your message.")
		case errors.Is(err, ai.ErrRateLimited):
			Fail(c, http.StatusTooManyRequests, 42901, "Too many requests. Please wait a moment and try again.")
		case errors.Is(err, ai.ErrTimedOut):
			Fail(c, http.StatusGatewayTimeout, 50401, "Request timed out. Please try again.")
		default:
			Fail(c, http.StatusBadGateway, 50201, "AI service temporarily unavailable.")
		}
		return
	}

	OK(c, gin.H{
		"session_id":   req.SessionID,
		"reply":        reply.Content,
		"total_tokens": reply.TokenUsage,
	})
}

func (h *Handler) ListMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	msgs, err := h.Svc.History(sessionID)
	if err != nil {
		Fail(c, http.StatusNotFound, 40004, "session not found")
		return
	}

	OK(c, gin.H{"messages": msgs})
}
