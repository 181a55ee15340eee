// medchat is the ephemeral deployment: a medical-education chat page whose
// history lives only in process memory for the duration of a session.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/chat"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/config"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/httpapi"
)

const systemPrompt = `You are a medical assistant chatbot for educational purposes only.

You have access to previous messages in this session.
Use them for consistency.

Strict rules:
- Provide general medical education only.
- Do NOT diagnose medical conditions.
- Do NOT prescribe medications or provide dosages.
- Do NOT replace professional medical consultation.
- Always mention warning signs requiring urgent care.
- Encourage consulting a licensed healthcare professional.
- Be calm, empathetic, and professional.`

func main() {
	defaults := config.Defaults()
	defaults.PersistHistory = false
	defaults.Temperature = 0.6
	defaults.SystemPrompt = systemPrompt
	defaults.Title = "Medical AI Chatbot"
	defaults.Caption = "Educational Use Only"
	defaults.Disclaimer = "This chatbot provides educational information only. " +
		"It does NOT replace professional medical advice. " +
		"Consult a licensed healthcare provider for diagnosis or treatment."

	cfg, err := config.Load(defaults)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	reg := ai.NewRegistry()
	reg.Register("openai", func() (ai.Provider, error) {
		return ai.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model,
			cfg.Temperature, cfg.MaxOutputTokens, cfg.RequestTimeout), nil
	})
	provider, err := reg.Get(cfg.AIProvider)
	if err != nil {
		logger.Fatal("provider init failed", zap.Error(err))
	}

	sessions := chat.NewSessions(cfg.MaxMessages)
	svc := chat.NewService(sessions, provider, nil, cfg.SystemPrompt, cfg.MaxInputLen, logger)

	r := httpapi.NewRouter(svc, cfg, logger)

	logger.Info("medchat listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
