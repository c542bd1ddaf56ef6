package reflector

import (
	"context"
	"errors"
	"testing"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/rag"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, _ string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, opts...)
}

func (f *fakeLLM) ChatStream(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Stream, error) {
	return nil, errors.New("not implemented")
}

type fakeConversations struct {
	history []entity.ChatTurn
	err     error
}

func (f *fakeConversations) Append(context.Context, int64, string, string) error { return nil }

func (f *fakeConversations) RecentHistory(context.Context, int64, int) ([]entity.ChatTurn, error) {
	return f.history, f.err
}

func (f *fakeConversations) ClearHistory(context.Context, int64) error { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestReflect(t *testing.T) {
	history := []entity.ChatTurn{
		{Role: "user", Content: "show me red dresses"},
		{Role: "chatbot", Content: "Here are some red dresses."},
	}

	tests := []struct {
		name         string
		history      []entity.ChatTurn
		historyErr   error
		llmResponse  string
		llmErr       error
		query        string
		want         string
		wantReason   rag.FallbackReason
		wantLLMCalls int
	}{
		{
			name:         "empty history passes query through without llm call",
			query:        "show me red dresses",
			want:         "show me red dresses",
			wantReason:   rag.FallbackNone,
			wantLLMCalls: 0,
		},
		{
			name:         "follow-up gets rewritten",
			history:      history,
			llmResponse:  "cheaper red dresses under 50 dollars",
			query:        "any cheaper ones?",
			want:         "cheaper red dresses under 50 dollars",
			wantReason:   rag.FallbackNone,
			wantLLMCalls: 1,
		},
		{
			name:       "history load failure falls back to raw query",
			historyErr: errors.New("redis down"),
			query:      "any cheaper ones?",
			want:       "any cheaper ones?",
			wantReason: rag.FallbackReflectionFail,
		},
		{
			name:       "llm failure falls back to raw query",
			history:    history,
			llmErr:     errors.New("timeout"),
			query:      "any cheaper ones?",
			want:       "any cheaper ones?",
			wantReason: rag.FallbackReflectionFail,
		},
		{
			name:        "blank rewrite falls back to raw query",
			history:     history,
			llmResponse: "   ",
			query:       "any cheaper ones?",
			want:        "any cheaper ones?",
			wantReason:  rag.FallbackReflectionFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llmFake := &fakeLLM{response: tt.llmResponse, err: tt.llmErr}
			conversations := &fakeConversations{history: tt.history, err: tt.historyErr}

			r := NewReflector(llmFake, conversations, nopLogger{})
			got, reason := r.Reflect(context.Background(), 42, tt.query)

			if got != tt.want {
				t.Errorf("Reflect() = %q, want %q", got, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
			if tt.wantLLMCalls > 0 || tt.name == "empty history passes query through without llm call" {
				if llmFake.calls != tt.wantLLMCalls {
					t.Errorf("llm calls = %d, want %d", llmFake.calls, tt.wantLLMCalls)
				}
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	got := formatHistory([]entity.ChatTurn{
		{Role: "user", Content: "hello"},
		{Role: "chatbot", Content: "hi, looking for anything?"},
	})
	want := "user: hello\nchatbot: hi, looking for anything?"
	if got != want {
		t.Errorf("formatHistory() = %q, want %q", got, want)
	}
}
