package groq

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fashion-chatbot-be/pkg/llm"
)

func newTestProvider(handler http.HandlerFunc) (*GroqProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewGroqProvider("test-key", "test-model", srv.URL), srv
}

func TestNewGroqProviderBaseURL(t *testing.T) {
	if got := NewGroqProvider("k", "m", "").BaseURL; got != "https://api.groq.com/openai/v1" {
		t.Errorf("default BaseURL = %q", got)
	}
	if got := NewGroqProvider("k", "m", "http://groq.internal/v1").BaseURL; got != "http://groq.internal/v1" {
		t.Errorf("BaseURL = %q, want configured URL", got)
	}
}

func TestChat(t *testing.T) {
	var captured groqChatRequest

	provider, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		json.NewDecoder(r.Body).Decode(&captured)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello back"}},
			},
		})
	})
	defer srv.Close()

	got, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "chatbot", Content: "previous answer"},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "hello back" {
		t.Errorf("Chat() = %q, want %q", got, "hello back")
	}

	if captured.Model != "test-model" {
		t.Errorf("model = %q, want test-model", captured.Model)
	}
	if captured.Temperature != 0.7 || captured.MaxTokens != 8192 || captured.TopP != 1 {
		t.Errorf("defaults = temp %v / max %d / topp %v, want 0.7 / 8192 / 1",
			captured.Temperature, captured.MaxTokens, captured.TopP)
	}
	// Conversation roles map onto the OpenAI role set.
	if captured.Messages[1].Role != "assistant" {
		t.Errorf("chatbot role mapped to %q, want assistant", captured.Messages[1].Role)
	}
	if captured.ResponseFormat != nil {
		t.Errorf("response_format = %v, want absent without JSON mode", captured.ResponseFormat)
	}
}

func TestChatJSONModeAndOptions(t *testing.T) {
	var captured groqChatRequest

	provider, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"queries":[]}`}},
			},
		})
	})
	defer srv.Close()

	_, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "decompose"}},
		llm.WithTemperature(0.1), llm.WithJSONMode(), llm.WithModel("other-model"),
	)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if captured.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", captured.Temperature)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %v, want json_object", captured.ResponseFormat)
	}
	if captured.Model != "other-model" {
		t.Errorf("model = %q, want override", captured.Model)
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error status", status: http.StatusTooManyRequests, body: `rate limited`},
		{name: "api error payload", status: http.StatusOK, body: `{"error":{"message":"bad model"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			if _, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
				t.Error("Chat() error = nil, want error")
			}
		})
	}
}

func TestChatStream(t *testing.T) {
	provider, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		var req groqChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.Stream {
			t.Errorf("stream = false, want true")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		io.WriteString(w, ": keep-alive\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	})
	defer srv.Close()

	stream, err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}
	defer stream.Close()

	var got string
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv() error = %v", err)
		}
		got += frag
	}

	if got != "Hello" {
		t.Errorf("streamed content = %q, want %q", got, "Hello")
	}
}

func TestChatStreamErrorStatus(t *testing.T) {
	provider, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	if _, err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Error("ChatStream() error = nil, want error")
	}
}
