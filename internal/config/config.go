// Package config resolves process settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// MemoryModeHeuristic enables pattern-based fact extraction after each turn.
const MemoryModeHeuristic = "heuristic"

// Settings holds every tunable with its default.
type Settings struct {
	Backend       string  `env:"BACKEND" envDefault:"ollama"`
	OllamaBaseURL string  `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	ModelName     string  `env:"MODEL_NAME" envDefault:"llama3.1"`
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"`
	NumCtx        int     `env:"N_CTX" envDefault:"4096"`
	Temperature   float64 `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens     int     `env:"MAX_TOKENS" envDefault:"512"`
	MemoryMode    string  `env:"MEMORY_MODE" envDefault:"heuristic"`
	HistoryWindow int     `env:"MEMORY_LAST_N" envDefault:"12"`
	NotesLimit    int     `env:"MEMORY_NOTES_LIMIT" envDefault:"6"`
	WebHost       string  `env:"WEB_HOST" envDefault:"127.0.0.1"`
	WebPort       int     `env:"WEB_PORT" envDefault:"8000"`
	SystemPrompt  string  `env:"SYSTEM_PROMPT"`
	DBPath        string  `env:"MEMCHAT_DB"`
}

// Load reads .env (if present) and then the environment.
func Load() (Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
