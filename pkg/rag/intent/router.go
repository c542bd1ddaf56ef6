// Package intent classifies queries into conversational routes by embedding
// similarity against per-route sample utterances.
package intent

import (
	"fmt"
	"math"

	gocache "github.com/patrickmn/go-cache"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/pkg/embedding"
	"fashion-chatbot-be/pkg/rag"
)

type Router struct {
	embedder embedding.EmbeddingProvider
	routes   []Route
	memo     *gocache.Cache
	logger   logger.ILogger
}

func NewRouter(embedder embedding.EmbeddingProvider, routes []Route, log logger.ILogger) *Router {
	return &Router{
		embedder: embedder,
		routes:   routes,
		memo:     gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		logger:   log,
	}
}

// Guide picks the route whose utterance set is most similar to the query.
// When no route clears its threshold the router abstains and product search
// wins, since a missed product query costs more than a stilted greeting.
func (r *Router) Guide(query string) (string, rag.FallbackReason) {
	queryVecs, err := r.embedder.EmbedDense([]string{query})
	if err != nil || len(queryVecs) == 0 {
		r.logger.Warn("IntentRouter", "Query embedding failed, defaulting route", map[string]interface{}{
			"error": fmt.Sprintf("%v", err),
		})
		return constant.IntentProductQuery, rag.FallbackRouterFail
	}
	queryVec := queryVecs[0]

	bestRoute := ""
	bestScore := 0.0

	for _, route := range r.routes {
		vecs, err := r.routeEmbeddings(route)
		if err != nil {
			r.logger.Warn("IntentRouter", "Utterance embedding failed, defaulting route", map[string]interface{}{
				"route": route.Name,
				"error": err.Error(),
			})
			return constant.IntentProductQuery, rag.FallbackRouterFail
		}

		score := 0.0
		for _, vec := range vecs {
			if sim := cosineSimilarity(queryVec, vec); sim > score {
				score = sim
			}
		}

		if score >= route.Threshold && score > bestScore {
			bestRoute = route.Name
			bestScore = score
		}
	}

	if bestRoute == "" {
		return constant.IntentProductQuery, rag.FallbackRouterAbstain
	}
	return bestRoute, rag.FallbackNone
}

// routeEmbeddings embeds a route's utterances once and memoizes the result
// for the lifetime of the router.
func (r *Router) routeEmbeddings(route Route) ([][]float32, error) {
	if cached, found := r.memo.Get(route.Name); found {
		return cached.([][]float32), nil
	}

	vecs, err := r.embedder.EmbedDense(route.Utterances)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(route.Utterances) {
		return nil, fmt.Errorf("intent: embedded %d utterances, got %d vectors", len(route.Utterances), len(vecs))
	}

	r.memo.Set(route.Name, vecs, gocache.NoExpiration)
	return vecs, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
