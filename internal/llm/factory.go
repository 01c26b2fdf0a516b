package llm

import (
	"fmt"
	"strings"

	"github.com/rcliao/memchat/internal/config"
)

const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// NewClient builds the configured backend. A failure here means the
// process cannot chat until reconfigured.
func NewClient(cfg config.Settings) (Client, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.ModelName, cfg.NumCtx), nil
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
