package rerank

import (
	"context"

	"fashion-chatbot-be/pkg/vectorstore"
)

// Reranker performs a second-pass relevance scoring over fused search
// candidates. Implementations must not mutate the input slice.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []vectorstore.ScoredPoint, topK int) ([]vectorstore.ScoredPoint, error)
}
