package factory

import (
	"fmt"

	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/llm/groq"
	"fashion-chatbot-be/pkg/llm/ollama"
)

// NewLLMProvider selects a chat provider by name. The base URL belongs to
// whichever provider is selected; empty falls back to the provider default.
func NewLLMProvider(providerType, modelName, apiKey, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		if apiKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		return groq.NewGroqProvider(apiKey, modelName, baseURL), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
