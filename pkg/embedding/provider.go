package embedding

// SparseVector is an indices+weights embedding capturing term overlap.
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// EmbeddingProvider generates dense and sparse text embeddings in batches.
// Both slices returned by Embed are index-aligned with the input texts.
type EmbeddingProvider interface {
	Embed(texts []string) ([][]float32, []SparseVector, error)

	// EmbedDense skips the sparse branch for callers that only need
	// semantic vectors (e.g. intent classification).
	EmbedDense(texts []string) ([][]float32, error)
}
