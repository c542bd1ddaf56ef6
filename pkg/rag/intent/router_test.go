package intent

import (
	"errors"
	"testing"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/pkg/embedding"
	"fashion-chatbot-be/pkg/rag"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(texts []string) ([][]float32, []embedding.SparseVector, error) {
	dense, err := f.EmbedDense(texts)
	return dense, make([]embedding.SparseVector, len(texts)), err
}

func (f *fakeEmbedder) EmbedDense(texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			vec = []float32{0, 0, 1}
		}
		out[i] = vec
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testRoutes() []Route {
	return []Route{
		{Name: constant.IntentChitchat, Threshold: 0.3, Utterances: []string{"hello"}},
		{Name: constant.IntentProductQuery, Threshold: 0.5, Utterances: []string{"red dress"}},
	}
}

func testVectors() map[string][]float32 {
	return map[string][]float32{
		"hello":      {1, 0, 0},
		"red dress":  {0, 1, 0},
		"hey there":  {0.95, 0.05, 0},
		"blue jeans": {0.05, 0.95, 0},
		"weather":    {0, 0, 1},
	}
}

func TestGuide(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		want       string
		wantReason rag.FallbackReason
	}{
		{
			name:       "greeting routes to chitchat",
			query:      "hey there",
			want:       constant.IntentChitchat,
			wantReason: rag.FallbackNone,
		},
		{
			name:       "product query routes to product search",
			query:      "blue jeans",
			want:       constant.IntentProductQuery,
			wantReason: rag.FallbackNone,
		},
		{
			name:       "no route clears threshold, abstain defaults to product search",
			query:      "weather",
			want:       constant.IntentProductQuery,
			wantReason: rag.FallbackRouterAbstain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(&fakeEmbedder{vectors: testVectors()}, testRoutes(), nopLogger{})

			got, reason := router.Guide(tt.query)

			if got != tt.want {
				t.Errorf("Guide() = %q, want %q", got, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestGuideEmbeddingFailure(t *testing.T) {
	router := NewRouter(&fakeEmbedder{err: errors.New("tei down")}, testRoutes(), nopLogger{})

	got, reason := router.Guide("hello")

	if got != constant.IntentProductQuery {
		t.Errorf("Guide() = %q, want %q", got, constant.IntentProductQuery)
	}
	if reason != rag.FallbackRouterFail {
		t.Errorf("reason = %q, want %q", reason, rag.FallbackRouterFail)
	}
}

func TestRouteEmbeddingsMemoized(t *testing.T) {
	embedder := &fakeEmbedder{vectors: testVectors()}
	router := NewRouter(embedder, testRoutes(), nopLogger{})

	router.Guide("hey there")
	afterFirst := embedder.calls // query + one batch per route

	router.Guide("blue jeans")
	afterSecond := embedder.calls

	if afterFirst != 3 {
		t.Errorf("embedder calls after first Guide = %d, want 3", afterFirst)
	}
	// Only the query itself gets embedded the second time around.
	if afterSecond != afterFirst+1 {
		t.Errorf("embedder calls after second Guide = %d, want %d", afterSecond, afterFirst+1)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 0}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
