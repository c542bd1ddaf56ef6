package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fashion-chatbot-be/pkg/rerank"
	"fashion-chatbot-be/pkg/vectorstore"
)

// JinaReranker scores candidates against the query via the Jina rerank API.
// Candidate text is the indexed semantic blob (payload text_content).
type JinaReranker struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ rerank.Reranker = &JinaReranker{}

func NewJinaReranker(apiKey, model string) *JinaReranker {
	return &JinaReranker{
		apiKey:  apiKey,
		baseURL: "https://api.jina.ai/v1/rerank",
		model:   model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r *JinaReranker) Rerank(ctx context.Context, query string, candidates []vectorstore.ScoredPoint, topK int) ([]vectorstore.ScoredPoint, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if topK <= 0 || topK > len(candidates) {
		topK = len(candidates)
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Payload.TextContent
	}

	reqBody := rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: documents,
		TopN:      topK,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina rerank error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var rerankResp rerankResponse
	if err := json.Unmarshal(bodyBytes, &rerankResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if rerankResp.Error != nil {
		return nil, fmt.Errorf("jina rerank returned error: %s", rerankResp.Error.Message)
	}

	reranked := make([]vectorstore.ScoredPoint, 0, len(rerankResp.Results))
	for _, result := range rerankResp.Results {
		if result.Index < 0 || result.Index >= len(candidates) {
			continue
		}
		hit := candidates[result.Index]
		hit.Score = result.RelevanceScore
		reranked = append(reranked, hit)
	}
	if len(reranked) == 0 {
		return nil, fmt.Errorf("jina rerank returned no usable results")
	}
	return reranked, nil
}
