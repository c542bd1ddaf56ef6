// Package reflector rewrites follow-up queries into standalone ones using
// recent conversation history.
package reflector

import (
	"context"
	"fmt"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/contract"
	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/rag"
)

type Reflector struct {
	llmProvider   llm.LLMProvider
	conversations contract.ConversationRepository
	historyLimit  int
	logger        logger.ILogger
}

func NewReflector(llmProvider llm.LLMProvider, conversations contract.ConversationRepository, log logger.ILogger) *Reflector {
	return &Reflector{
		llmProvider:   llmProvider,
		conversations: conversations,
		historyLimit:  constant.ChatHistoryLimit,
		logger:        log,
	}
}

// Reflect returns a self-contained version of query. With no usable history
// the query passes through unchanged; any failure along the way falls back to
// the original query so the pipeline keeps going.
func (r *Reflector) Reflect(ctx context.Context, sessionID int64, query string) (string, rag.FallbackReason) {
	history, err := r.conversations.RecentHistory(ctx, sessionID, r.historyLimit)
	if err != nil {
		r.logger.Warn("Reflector", "Failed to load history, using raw query", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return query, rag.FallbackReflectionFail
	}

	if len(history) == 0 {
		return query, rag.FallbackNone
	}

	prompt := fmt.Sprintf(constant.RewriteQueryPrompt, formatHistory(history), query)

	rewritten, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		r.logger.Warn("Reflector", "Rewrite call failed, using raw query", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return query, rag.FallbackReflectionFail
	}

	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return query, rag.FallbackReflectionFail
	}

	return rewritten, rag.FallbackNone
}

func formatHistory(turns []entity.ChatTurn) string {
	var sb strings.Builder
	for i, turn := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
	}
	return sb.String()
}
