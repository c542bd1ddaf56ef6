// Package rag carries the types shared across the retrieval pipeline stages.
package rag

// SubQuery is one retrieval unit produced by query expansion. SemanticQuery
// drives the dense vector search, Keywords drive the sparse one.
type SubQuery struct {
	SemanticQuery string   `json:"semantic_query"`
	Keywords      []string `json:"keywords"`
}

// FallbackReason tags a pipeline step that degraded but recovered. An empty
// reason means the step ran on its primary path.
type FallbackReason string

const (
	FallbackNone           FallbackReason = ""
	FallbackReflectionFail FallbackReason = "reflection_failed"
	FallbackRouterAbstain  FallbackReason = "router_abstained"
	FallbackRouterFail     FallbackReason = "router_failed"
	FallbackExpansionFail  FallbackReason = "expansion_failed"
	FallbackRerankFail     FallbackReason = "rerank_failed"
)

// Degraded reports whether the step fell back from its primary path.
func (r FallbackReason) Degraded() bool {
	return r != FallbackNone
}
