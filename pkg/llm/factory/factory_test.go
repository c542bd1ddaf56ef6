package factory

import (
	"testing"

	"fashion-chatbot-be/pkg/llm/groq"
	"fashion-chatbot-be/pkg/llm/ollama"
)

func TestNewLLMProvider(t *testing.T) {
	t.Run("groq gets the configured base URL", func(t *testing.T) {
		p, err := NewLLMProvider("groq", "llama-3.3-70b-versatile", "key", "http://groq.internal/v1")
		if err != nil {
			t.Fatalf("NewLLMProvider() error = %v", err)
		}
		gp, ok := p.(*groq.GroqProvider)
		if !ok {
			t.Fatalf("provider type = %T, want *groq.GroqProvider", p)
		}
		if gp.BaseURL != "http://groq.internal/v1" {
			t.Errorf("BaseURL = %q, want configured URL", gp.BaseURL)
		}
	})

	t.Run("groq without api key fails", func(t *testing.T) {
		if _, err := NewLLMProvider("groq", "model", "", ""); err == nil {
			t.Error("NewLLMProvider() error = nil, want missing key error")
		}
	})

	t.Run("ollama defaults its base URL", func(t *testing.T) {
		p, err := NewLLMProvider("ollama", "llama3", "", "")
		if err != nil {
			t.Fatalf("NewLLMProvider() error = %v", err)
		}
		op, ok := p.(*ollama.OllamaProvider)
		if !ok {
			t.Fatalf("provider type = %T, want *ollama.OllamaProvider", p)
		}
		if op.BaseURL != "http://localhost:11434" {
			t.Errorf("BaseURL = %q, want default", op.BaseURL)
		}
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		if _, err := NewLLMProvider("openai", "gpt", "key", ""); err == nil {
			t.Error("NewLLMProvider() error = nil, want unsupported provider error")
		}
	})
}
