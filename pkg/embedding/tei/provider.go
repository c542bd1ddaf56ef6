package tei

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fashion-chatbot-be/pkg/embedding"
)

// TeiProvider talks to two text-embeddings-inference deployments: one
// serving a dense sentence model and one serving a SPLADE-style sparse
// model. Batches are sent as a single request per branch.
type TeiProvider struct {
	DenseURL  string
	SparseURL string
	Client    *http.Client
}

var _ embedding.EmbeddingProvider = &TeiProvider{}

func NewTeiProvider(denseURL, sparseURL string) *TeiProvider {
	return &TeiProvider{
		DenseURL:  denseURL,
		SparseURL: sparseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type embedRequest struct {
	Inputs []string `json:"inputs"`
}

type sparseTerm struct {
	Index uint32  `json:"index"`
	Value float32 `json:"value"`
}

func (p *TeiProvider) Embed(texts []string) ([][]float32, []embedding.SparseVector, error) {
	dense, err := p.EmbedDense(texts)
	if err != nil {
		return nil, nil, err
	}

	sparse, err := p.embedSparse(texts)
	if err != nil {
		return nil, nil, err
	}

	return dense, sparse, nil
}

func (p *TeiProvider) EmbedDense(texts []string) ([][]float32, error) {
	var dense [][]float32
	if err := p.post(p.DenseURL+"/embed", embedRequest{Inputs: texts}, &dense); err != nil {
		return nil, fmt.Errorf("dense embedding failed: %w", err)
	}
	if len(dense) != len(texts) {
		return nil, fmt.Errorf("dense embedding count mismatch: got %d, want %d", len(dense), len(texts))
	}
	return dense, nil
}

func (p *TeiProvider) embedSparse(texts []string) ([]embedding.SparseVector, error) {
	var raw [][]sparseTerm
	if err := p.post(p.SparseURL+"/embed_sparse", embedRequest{Inputs: texts}, &raw); err != nil {
		return nil, fmt.Errorf("sparse embedding failed: %w", err)
	}
	if len(raw) != len(texts) {
		return nil, fmt.Errorf("sparse embedding count mismatch: got %d, want %d", len(raw), len(texts))
	}

	sparse := make([]embedding.SparseVector, len(raw))
	for i, terms := range raw {
		vec := embedding.SparseVector{
			Indices: make([]uint32, len(terms)),
			Values:  make([]float32, len(terms)),
		}
		for j, term := range terms {
			vec.Indices[j] = term.Index
			vec.Values[j] = term.Value
		}
		sparse[i] = vec
	}
	return sparse, nil
}

func (p *TeiProvider) post(url string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tei error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
