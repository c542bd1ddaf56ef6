package groq

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fashion-chatbot-be/pkg/llm"
)

// GroqProvider talks to the Groq OpenAI-compatible chat completions API.
type GroqProvider struct {
	ApiKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure GroqProvider implements LLMProvider
var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(apiKey, modelName, baseURL string) *GroqProvider {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	return &GroqProvider{
		ApiKey:    apiKey,
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponseFormat struct {
	Type string `json:"type"`
}

type groqChatRequest struct {
	Model          string              `json:"model"`
	Messages       []groqMessage       `json:"messages"`
	Temperature    float64             `json:"temperature"`
	MaxTokens      int                 `json:"max_completion_tokens,omitempty"`
	TopP           float64             `json:"top_p"`
	Stream         bool                `json:"stream"`
	ResponseFormat *groqResponseFormat `json:"response_format,omitempty"`
}

type groqChatResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type groqStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// --- Interface Implementation ---

func (g *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := resolveOptions(opts)

	resp, err := g.Client.Do(g.buildRequest(ctx, history, options, false))
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp groqChatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("groq api returned error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (g *GroqProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// ChatStream starts an SSE completion and pumps content deltas into the
// returned stream from a producer goroutine.
func (g *GroqProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Stream, error) {
	options := resolveOptions(opts)

	streamCtx, cancel := context.WithCancel(ctx)

	resp, err := g.Client.Do(g.buildRequest(streamCtx, history, options, true))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("groq stream request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("groq error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	stream := llm.NewStream(cancel)

	go func() {
		defer resp.Body.Close()
		stream.Finish(pumpSSE(streamCtx, resp.Body, stream))
	}()

	return stream, nil
}

// pumpSSE reads "data: {...}" lines from an OpenAI-style event stream until
// the [DONE] sentinel, forwarding non-empty content deltas.
func pumpSSE(ctx context.Context, body io.Reader, stream *llm.Stream) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var chunk groqStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue // tolerate keep-alive noise between events
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		content := chunk.Choices[0].Delta.Content
		if content == "" {
			continue
		}
		if err := stream.Send(ctx, content); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (g *GroqProvider) buildRequest(ctx context.Context, history []llm.Message, options *llm.Options, streaming bool) *http.Request {
	messages := make([]groqMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" || role == "chatbot" {
			role = "assistant"
		}
		messages[i] = groqMessage{Role: role, Content: msg.Content}
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := groqChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		TopP:        1,
		Stream:      streaming,
	}
	if options.JSONMode {
		reqPayload.ResponseFormat = &groqResponseFormat{Type: "json_object"}
	}

	payloadBytes, _ := json.Marshal(reqPayload)

	req, _ := http.NewRequestWithContext(ctx, "POST", g.BaseURL+"/chat/completions", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.ApiKey)
	return req
}

func resolveOptions(opts []llm.Option) *llm.Options {
	options := &llm.Options{
		Temperature: 0.7, // Default
		MaxTokens:   8192,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
