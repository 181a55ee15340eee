package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store driver names.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

var (
	ErrMissingAPIKey   = errors.New("config: OPENAI_API_KEY is required")
	ErrMissingMongoURI = errors.New("config: MONGODB_URI is required")
	ErrUnknownStore    = errors.New("config: unknown store driver")
)

type Config struct {
	Addr string `env:"ADDR"`

	// Completion provider
	AIProvider      string        `env:"AI_PROVIDER"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	Model           string        `env:"MODEL_NAME"`
	Temperature     float64       `env:"TEMPERATURE"`
	MaxOutputTokens int           `env:"MAX_OUTPUT_TOKENS"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`

	// Conversation
	SystemPrompt string `env:"SYSTEM_PROMPT"`
	MaxMessages  int    `env:"MAX_MESSAGES"`
	MaxInputLen  int    `env:"MAX_INPUT_LEN"`

	// Message store (persistent deployment only). PersistHistory is fixed
	// by the deployment, not the environment.
	PersistHistory bool
	StoreDriver    string `env:"STORE_DRIVER"`
	MongoURI       string `env:"MONGODB_URI"`
	MongoDatabase  string `env:"MONGODB_DATABASE"`
	SQLitePath     string `env:"SQLITE_PATH"`

	// Page chrome
	Title      string `env:"PAGE_TITLE"`
	Caption    string `env:"PAGE_CAPTION"`
	Disclaimer string `env:"PAGE_DISCLAIMER"`
}

// Defaults returns the settings shared by both deployments. Each main overrides
// the prompt, temperature and page chrome before calling Load.
func Defaults() Config {
	return Config{
		Addr:            ":8080",
		AIProvider:      "openai",
		OpenAIBaseURL:   "https://api.openai.com/v1",
		Model:           "gpt-3.5-turbo",
		Temperature:     0.7,
		MaxOutputTokens: 500,
		RequestTimeout:  30 * time.Second,
		MaxMessages:     20,
		MaxInputLen:     2000,
		StoreDriver:     StoreMongo,
		MongoDatabase:   "ai_chatbot_db",
		SQLitePath:      "chat.db",
	}
}

// Load fills cfg from .env / environment on top of the given defaults and
// validates required secrets. A validation error is fatal to the caller: the
// process must not serve a single turn without its secrets.
func Load(cfg Config) (Config, error) {
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return cfg, ErrMissingAPIKey
	}
	if cfg.PersistHistory {
		switch cfg.StoreDriver {
		case StoreMongo:
			if strings.TrimSpace(cfg.MongoURI) == "" {
				return cfg, ErrMissingMongoURI
			}
		case StoreSQLite:
		default:
			return cfg, ErrUnknownStore
		}
	}
	return cfg, nil
}
