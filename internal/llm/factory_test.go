package llm

import (
	"testing"

	"github.com/rcliao/memchat/internal/config"
)

func TestNewClientOllama(t *testing.T) {
	c, err := NewClient(config.Settings{Backend: "ollama", OllamaBaseURL: "http://localhost:11434", ModelName: "llama3.1", NumCtx: 4096})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, ok := c.(*OllamaClient); !ok {
		t.Errorf("client type = %T", c)
	}
}

func TestNewClientOpenAI(t *testing.T) {
	c, err := NewClient(config.Settings{Backend: "OpenAI", OpenAIAPIKey: "sk-test", ModelName: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, ok := c.(*OpenAIClient); !ok {
		t.Errorf("client type = %T", c)
	}
}

func TestNewClientOpenAIMissingKey(t *testing.T) {
	if _, err := NewClient(config.Settings{Backend: "openai"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewClientUnknownBackend(t *testing.T) {
	if _, err := NewClient(config.Settings{Backend: "bogus"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
