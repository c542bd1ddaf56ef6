// Package pipeline orchestrates the chat flow: reflection, routing, caching,
// retrieval and grounded generation.
package pipeline

import (
	"context"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/contract"
	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/rag/expand"
	"fashion-chatbot-be/pkg/rag/intent"
	"fashion-chatbot-be/pkg/rag/prompt"
	"fashion-chatbot-be/pkg/rag/reflector"
	"fashion-chatbot-be/pkg/rag/retrieve"
)

// SemanticCache stores previously generated answers keyed by query meaning.
// Search misses on any backend failure, Save is best-effort.
type SemanticCache interface {
	Search(ctx context.Context, prompt string) (string, bool)
	Save(ctx context.Context, prompt, response string)
}

// Result is the outcome of a buffered chat turn.
type Result struct {
	Content  string               `json:"content"`
	Intent   string               `json:"intent"`
	Products []dto.ProductSummary `json:"products"`
}

type Pipeline struct {
	reflector     *reflector.Reflector
	router        *intent.Router
	expander      *expand.Expander
	retriever     *retrieve.Retriever
	llmProvider   llm.LLMProvider
	cache         SemanticCache
	conversations contract.ConversationRepository
	logger        logger.ILogger
}

func NewPipeline(
	refl *reflector.Reflector,
	router *intent.Router,
	expander *expand.Expander,
	retriever *retrieve.Retriever,
	llmProvider llm.LLMProvider,
	cache SemanticCache,
	conversations contract.ConversationRepository,
	log logger.ILogger,
) *Pipeline {
	return &Pipeline{
		reflector:     refl,
		router:        router,
		expander:      expander,
		retriever:     retriever,
		llmProvider:   llmProvider,
		cache:         cache,
		conversations: conversations,
		logger:        log,
	}
}

// Ask runs a full buffered chat turn for the session.
func (p *Pipeline) Ask(ctx context.Context, sessionID int64, query string) (*Result, error) {
	reflected, reason := p.reflector.Reflect(ctx, sessionID, query)
	if reason.Degraded() {
		p.logger.Info("Pipeline", "Reflection degraded", map[string]interface{}{
			"session_id": sessionID,
			"reason":     string(reason),
		})
	}

	route, _ := p.router.Guide(reflected)

	if route == constant.IntentChitchat {
		answer, err := p.llmProvider.Generate(ctx, prompt.ForChitchat(reflected))
		if err != nil {
			return nil, err
		}
		p.persistTurn(ctx, sessionID, query, answer)
		return &Result{Content: answer, Intent: route, Products: []dto.ProductSummary{}}, nil
	}

	if cached, hit := p.cache.Search(ctx, reflected); hit {
		p.logger.Info("Pipeline", "Semantic cache hit", map[string]interface{}{
			"session_id": sessionID,
		})
		p.persistTurn(ctx, sessionID, query, cached)
		return &Result{Content: cached, Intent: route, Products: []dto.ProductSummary{}}, nil
	}

	subQueries, _ := p.expander.Expand(ctx, reflected)

	candidates, err := p.retriever.Retrieve(ctx, subQueries)
	if err != nil {
		return nil, err
	}

	answer, err := p.llmProvider.Generate(ctx, prompt.ForAnswer(prompt.BuildContext(candidates), reflected))
	if err != nil {
		return nil, err
	}

	p.persistTurn(ctx, sessionID, query, answer)
	if strings.TrimSpace(answer) != "" {
		p.cache.Save(ctx, reflected, answer)
	}

	return &Result{Content: answer, Intent: route, Products: projectProducts(candidates)}, nil
}

// persistTurn appends the user query and the assistant answer to session
// memory. Failures are logged and swallowed so a storage hiccup never voids
// an already generated answer.
func (p *Pipeline) persistTurn(ctx context.Context, sessionID int64, query, answer string) {
	if err := p.conversations.Append(ctx, sessionID, constant.ChatRoleUser, query); err != nil {
		p.logger.Error("Pipeline", "Failed to persist user turn", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	if err := p.conversations.Append(ctx, sessionID, constant.ChatRoleChatbot, answer); err != nil {
		p.logger.Error("Pipeline", "Failed to persist chatbot turn", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}
