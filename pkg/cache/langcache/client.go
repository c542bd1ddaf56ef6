package langcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client is a REST client to a Redis LangCache deployment: a semantic
// prompt/response cache matched by embedding similarity.
//
// Caching here is an optimization, never a correctness requirement, so
// both operations are forgiving: Search treats any failure as a miss and
// Save only logs failures.
type Client struct {
	serverURL  string
	cacheID    string
	apiKey     string
	threshold  float64
	httpClient *http.Client
}

type Config struct {
	ServerURL string
	CacheID   string
	APIKey    string
	// Threshold is the minimum similarity for a hit. Defaults to 0.9.
	Threshold float64
}

func NewClient(cfg Config) *Client {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 0.9
	}
	return &Client{
		serverURL: cfg.ServerURL,
		cacheID:   cfg.CacheID,
		apiKey:    cfg.APIKey,
		threshold: threshold,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchRequest struct {
	Prompt              string  `json:"prompt"`
	SimilarityThreshold float64 `json:"similarityThreshold"`
}

type searchResponse struct {
	Data []struct {
		Response string `json:"response"`
	} `json:"data"`
}

type setRequest struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Search looks up a semantically similar prompt. The second return value
// reports a hit; errors are logged and reported as a miss.
func (c *Client) Search(ctx context.Context, prompt string) (string, bool) {
	url := fmt.Sprintf("%s/v1/caches/%s/entries/search", c.serverURL, c.cacheID)

	var resp searchResponse
	if err := c.post(ctx, url, searchRequest{Prompt: prompt, SimilarityThreshold: c.threshold}, &resp); err != nil {
		log.Printf("[WARN] langcache search failed, treating as miss: %v", err)
		return "", false
	}
	if len(resp.Data) == 0 {
		return "", false
	}
	return resp.Data[0].Response, true
}

// Save stores a prompt/response pair. Best-effort: failures are logged.
func (c *Client) Save(ctx context.Context, prompt, response string) {
	url := fmt.Sprintf("%s/v1/caches/%s/entries", c.serverURL, c.cacheID)

	if err := c.post(ctx, url, setRequest{Prompt: prompt, Response: response}, nil); err != nil {
		log.Printf("[WARN] langcache save failed: %v", err)
	}
}

func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("langcache error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
