// Package retrieve runs hybrid vector search plus reranking over expanded
// sub-queries and merges the results.
package retrieve

import (
	"context"
	"fmt"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/embedding"
	"fashion-chatbot-be/pkg/rag"
	"fashion-chatbot-be/pkg/rerank"
	"fashion-chatbot-be/pkg/vectorstore"
)

type Retriever struct {
	embedder   embedding.EmbeddingProvider
	store      vectorstore.VectorStore
	reranker   rerank.Reranker
	hybridTopK int
	rerankTopK int
	logger     logger.ILogger
}

func NewRetriever(embedder embedding.EmbeddingProvider, store vectorstore.VectorStore, reranker rerank.Reranker, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder:   embedder,
		store:      store,
		reranker:   reranker,
		hybridTopK: constant.HybridTopK,
		rerankTopK: constant.RerankTopK,
		logger:     log,
	}
}

// Retrieve searches every sub-query against the product index and merges the
// reranked candidates, deduplicating by product id with first-seen priority.
// Embedding and vector-store failures abort the whole retrieval; a rerank
// failure degrades that sub-query to fused order.
func (r *Retriever) Retrieve(ctx context.Context, subQueries []rag.SubQuery) ([]vectorstore.ScoredPoint, error) {
	if len(subQueries) == 0 {
		return nil, nil
	}

	// One embedding round-trip for all sub-queries. Even slots carry the
	// semantic query for the dense side, odd slots the keyword string for
	// the sparse side.
	texts := make([]string, 0, len(subQueries)*2)
	for _, sq := range subQueries {
		texts = append(texts, sq.SemanticQuery, keywordText(sq))
	}

	dense, sparse, err := r.embedder.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed sub-queries: %w", err)
	}
	if len(dense) != len(texts) || len(sparse) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d dense / %d sparse", len(texts), len(dense), len(sparse))
	}

	merged := make([]vectorstore.ScoredPoint, 0, len(subQueries)*r.rerankTopK)
	seen := make(map[int64]bool)

	for i, sq := range subQueries {
		candidates, err := r.store.HybridQuery(ctx, dense[i*2], sparse[i*2+1], r.hybridTopK)
		if err != nil {
			return nil, fmt.Errorf("hybrid query failed for %q: %w", sq.SemanticQuery, err)
		}
		if len(candidates) == 0 {
			continue
		}

		ranked, err := r.reranker.Rerank(ctx, sq.SemanticQuery, candidates, r.rerankTopK)
		if err != nil {
			r.logger.Warn("Retriever", "Rerank failed, keeping fused order", map[string]interface{}{
				"query": sq.SemanticQuery,
				"error": err.Error(),
			})
			// Better to surface every fused candidate than to guess
			// which five the reranker would have kept.
			ranked = candidates
		}

		for _, point := range ranked {
			if seen[point.Payload.ProductID] {
				continue
			}
			seen[point.Payload.ProductID] = true
			merged = append(merged, point)
		}
	}

	return merged, nil
}

func keywordText(sq rag.SubQuery) string {
	joined := strings.TrimSpace(strings.Join(sq.Keywords, " "))
	if joined == "" {
		return sq.SemanticQuery
	}
	return joined
}
