package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/chat"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/config"
)

type stubProvider struct {
	reply  string
	tokens int
	err    error
}

func (p *stubProvider) Complete(ctx context.Context, messages []ai.Message) (ai.Completion, error) {
	_ = ctx
	_ = messages
	if p.err != nil {
		return ai.Completion{}, p.err
	}
	return ai.Completion{Content: p.reply, TotalTokens: p.tokens}, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, prov ai.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Defaults()
	cfg.SystemPrompt = "p"
	cfg.Title = "Test Chat"
	cfg.Caption = "caption"
	cfg.Disclaimer = "disclaimer"

	sessions := chat.NewSessions(cfg.MaxMessages)
	svc := chat.NewService(sessions, prov, nil, cfg.SystemPrompt, cfg.MaxInputLen, nil)
	return NewRouter(svc, cfg, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	return w, env
}

func startSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/sessions", `{}`)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("create session: status=%d code=%d", w.Code, env.Code)
	}
	var data struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode session data: %v", err)
	}
	if data.SessionID == "" {
		t.Fatalf("empty session id")
	}
	return data.SessionID
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})
	w, env := doJSON(t, r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("ping: status=%d code=%d", w.Code, env.Code)
	}
}

func TestIndexRendersChrome(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("index status: %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Test Chat", "caption", "disclaimer"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestSendMessageHappyPath(t *testing.T) {
	r := newTestRouter(t, &stubProvider{reply: "the answer", tokens: 9})
	sid := startSession(t, r)

	w, env := doJSON(t, r, http.MethodPost, "/api/messages",
		`{"session_id":"`+sid+`","message":"a question"}`)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("send: status=%d code=%d message=%q", w.Code, env.Code, env.Message)
	}

	var data struct {
		Reply       string `json:"reply"`
		TotalTokens *int   `json:"total_tokens"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Reply != "the answer" {
		t.Fatalf("unexpected reply: %q", data.Reply)
	}
	if data.TotalTokens == nil || *data.TotalTokens != 9 {
		t.Fatalf("unexpected token count: %v", data.TotalTokens)
	}

	// transcript now holds both sides of the turn
	w, env = doJSON(t, r, http.MethodGet, "/api/sessions/"+sid+"/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history status: %d", w.Code)
	}
	var hist struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.Unmarshal(env.Data, &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(hist.Messages))
	}
}

func TestSendMessageInputTooLong(t *testing.T) {
	r := newTestRouter(t, &stubProvider{reply: "ok"})
	sid := startSession(t, r)

	long := strings.Repeat("x", 2001)
	w, env := doJSON(t, r, http.MethodPost, "/api/messages",
		`{"session_id":"`+sid+`","message":"`+long+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(env.Message, "Input too long") {
		t.Fatalf("unexpected message: %q", env.Message)
	}

	// the rejected turn must not touch the buffer
	_, hist := doJSON(t, r, http.MethodGet, "/api/sessions/"+sid+"/messages", "")
	var data struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.Unmarshal(hist.Data, &data); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(data.Messages) != 0 {
		t.Fatalf("expected empty buffer, got %d messages", len(data.Messages))
	}
}

func TestSendMessageProviderFailures(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", ai.ErrRateLimited, http.StatusTooManyRequests, "Too many requests. Please wait a moment and try again."},
		{"timed out", ai.ErrTimedOut, http.StatusGatewayTimeout, "Request timed out. Please try again."},
		{"unavailable", ai.ErrUnavailable, http.StatusBadGateway, "AI service temporarily unavailable."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t, &stubProvider{err: tc.err})
			sid := startSession(t, r)

			w, env := doJSON(t, r, http.MethodPost, "/api/messages",
				`{"session_id":"`+sid+`","message":"hi"}`)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			if env.Message != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, env.Message)
			}
		})
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	r := newTestRouter(t, &stubProvider{reply: "ok"})

	w, env := doJSON(t, r, http.MethodPost, "/api/messages",
		`{"session_id":"does-not-exist","message":"hi"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Message != "session not found" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}
