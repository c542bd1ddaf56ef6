package vectorstore

import (
	"context"

	"fashion-chatbot-be/pkg/embedding"
)

// ProductPayload mirrors the indexed product attributes stored alongside
// each vector. Sizes, colors and categories are comma-joined strings, as
// produced by the relational aggregation query.
type ProductPayload struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	Categories    string  `json:"categories"`
	Sizes         string  `json:"sizes"`
	Colors        string  `json:"colors"`
	Slug          string  `json:"slug"`
	TextContent   string  `json:"text_content"`
}

// Point is one product ready for upsert: both vector branches plus payload.
type Point struct {
	ID      int64
	Dense   []float32
	Sparse  embedding.SparseVector
	Payload ProductPayload
}

// ScoredPoint is a search hit.
type ScoredPoint struct {
	ID      int64
	Score   float64
	Payload ProductPayload
}

// VectorStore is the contract the retrieval and sync paths depend on.
// HybridQuery fuses a dense and a sparse search branch (reciprocal-rank
// fusion) and returns the top topK candidates.
type VectorStore interface {
	EnsureCollection(ctx context.Context, denseSize int) error
	Upsert(ctx context.Context, points []Point) error
	Delete(ctx context.Context, ids []int64) error
	HybridQuery(ctx context.Context, dense []float32, sparse embedding.SparseVector, topK int) ([]ScoredPoint, error)
}
