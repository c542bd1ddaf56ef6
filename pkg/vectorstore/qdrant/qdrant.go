package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fashion-chatbot-be/pkg/embedding"
	"fashion-chatbot-be/pkg/vectorstore"
)

const (
	denseVectorName  = "text-dense"
	sparseVectorName = "text-sparse"
)

// Storage is a minimal REST client to Qdrant configured for hybrid search:
// a named dense vector (cosine) plus a named sparse vector per point.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

var _ vectorstore.VectorStore = &Storage{}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the hybrid collection if it does not exist.
// Qdrant returns 409 when the collection is already present; that is not
// an error here.
func (s *Storage) EnsureCollection(ctx context.Context, denseSize int) error {
	if denseSize <= 0 {
		return fmt.Errorf("invalid dense vector size %d", denseSize)
	}
	body := map[string]any{
		"vectors": map[string]any{
			denseVectorName: map[string]any{
				"size":     denseSize,
				"distance": "Cosine",
			},
		},
		"sparse_vectors": map[string]any{
			sparseVectorName: map[string]any{},
		},
	}
	err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
	if err != nil && !isConflict(err) {
		return err
	}
	return nil
}

func (s *Storage) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id": p.ID,
			"vector": map[string]any{
				denseVectorName: p.Dense,
				sparseVectorName: map[string]any{
					"indices": p.Sparse.Indices,
					"values":  p.Sparse.Values,
				},
			},
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": payload}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Storage) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"points": ids}
	return s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), body, nil)
}

// HybridQuery runs the Query API with two prefetch branches (dense and
// sparse, each of size 2*topK) fused by reciprocal-rank fusion, returning
// the fused top topK with payloads.
func (s *Storage) HybridQuery(ctx context.Context, dense []float32, sparse embedding.SparseVector, topK int) ([]vectorstore.ScoredPoint, error) {
	if topK <= 0 {
		topK = 5
	}
	prefetchLimit := topK * 2

	req := map[string]any{
		"prefetch": []map[string]any{
			{
				"query": dense,
				"using": denseVectorName,
				"limit": prefetchLimit,
			},
			{
				"query": map[string]any{
					"indices": sparse.Indices,
					"values":  sparse.Values,
				},
				"using": sparseVectorName,
				"limit": prefetchLimit,
			},
		},
		"query":        map[string]any{"fusion": "rrf"},
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result struct {
			Points []struct {
				ID      int64                      `json:"id"`
				Score   float64                    `json:"score"`
				Payload vectorstore.ProductPayload `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/query", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}

	results := make([]vectorstore.ScoredPoint, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		results = append(results, vectorstore.ScoredPoint{
			ID:      p.ID,
			Score:   p.Score,
			Payload: p.Payload,
		})
	}
	return results, nil
}

type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant request to %s failed with status %d", e.url, e.code)
}

func isConflict(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusConflict
}

func (s *Storage) putJSON(ctx context.Context, url string, body any) error {
	return s.send(ctx, http.MethodPut, url, body, nil)
}

func (s *Storage) postJSON(ctx context.Context, url string, body any, out any) error {
	return s.send(ctx, http.MethodPost, url, body, out)
}

func (s *Storage) send(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, url: url}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
