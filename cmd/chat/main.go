// chat is the persistent deployment: a general-purpose chat page that mirrors
// every message into the message store and rehydrates session history from it.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/ai"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/chat"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/config"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/httpapi"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store/gormstore"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/store/mongostore"
)

func main() {
	defaults := config.Defaults()
	defaults.PersistHistory = true
	defaults.Temperature = 0.7
	defaults.SystemPrompt = "You are a helpful assistant."
	defaults.Title = "AI Conversational Chatbot"
	defaults.Caption = "Powered by OpenAI"
	defaults.Disclaimer = "AI chatbot responses are generated automatically and may not always " +
		"be accurate, complete, or up to date. Please verify critical information " +
		"independently before making decisions. By using this chat, you agree to these terms."

	cfg, err := config.Load(defaults)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer st.Close(context.Background())
	logger.Info("message store connected", zap.String("driver", cfg.StoreDriver))

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
	svc := chat.NewService(sessions, provider, st, cfg.SystemPrompt, cfg.MaxInputLen, logger)

	r := httpapi.NewRouter(svc, cfg, logger)

	logger.Info("chat listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return gormstore.Open(cfg.SQLitePath)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
}
