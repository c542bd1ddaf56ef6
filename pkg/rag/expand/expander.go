// Package expand decomposes a product query into hybrid-search sub-queries
// via a structured-output LLM call.
package expand

import (
	"context"
	"encoding/json"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/rag"
)

type Expander struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewExpander(llmProvider llm.LLMProvider, log logger.ILogger) *Expander {
	return &Expander{
		llmProvider: llmProvider,
		logger:      log,
	}
}

type decompositionResult struct {
	Queries []rag.SubQuery `json:"queries"`
}

// Expand asks the model to split the query into sub-queries. When the call or
// the JSON parse fails, the raw query becomes a single sub-query whose
// keywords are its whitespace-split tokens.
func (e *Expander) Expand(ctx context.Context, query string) ([]rag.SubQuery, rag.FallbackReason) {
	history := []llm.Message{
		{Role: "system", Content: constant.QueryDecompositionPrompt},
		{Role: "user", Content: query},
	}

	raw, err := e.llmProvider.Chat(ctx, history, llm.WithTemperature(0.1), llm.WithJSONMode())
	if err != nil {
		e.logger.Warn("QueryExpander", "Decomposition call failed, using raw query", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackSubQueries(query), rag.FallbackExpansionFail
	}

	var result decompositionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		e.logger.Warn("QueryExpander", "Decomposition output is not valid JSON, using raw query", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackSubQueries(query), rag.FallbackExpansionFail
	}

	subQueries := make([]rag.SubQuery, 0, len(result.Queries))
	for _, sq := range result.Queries {
		if strings.TrimSpace(sq.SemanticQuery) == "" {
			continue
		}
		subQueries = append(subQueries, sq)
	}

	if len(subQueries) == 0 {
		return fallbackSubQueries(query), rag.FallbackExpansionFail
	}
	return subQueries, rag.FallbackNone
}

func fallbackSubQueries(query string) []rag.SubQuery {
	return []rag.SubQuery{
		{SemanticQuery: query, Keywords: strings.Fields(query)},
	}
}
