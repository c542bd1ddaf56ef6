package langcache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     string
		wantHit  bool
	}{
		{
			name:    "hit returns first entry",
			status:  http.StatusOK,
			body:    `{"data":[{"response":"cached answer"},{"response":"older answer"}]}`,
			want:    "cached answer",
			wantHit: true,
		},
		{
			name:   "empty data is a miss",
			status: http.StatusOK,
			body:   `{"data":[]}`,
		},
		{
			name:   "server error is a miss",
			status: http.StatusInternalServerError,
			body:   `oops`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured searchRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/caches/cache-1/entries/search" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer key-1" {
					t.Errorf("missing bearer token")
				}
				json.NewDecoder(r.Body).Decode(&captured)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(Config{ServerURL: srv.URL, CacheID: "cache-1", APIKey: "key-1"})

			got, hit := client.Search(context.Background(), "red dress")

			if got != tt.want || hit != tt.wantHit {
				t.Errorf("Search() = (%q, %v), want (%q, %v)", got, hit, tt.want, tt.wantHit)
			}
			if captured.Prompt != "red dress" {
				t.Errorf("prompt = %q, want %q", captured.Prompt, "red dress")
			}
			if captured.SimilarityThreshold != 0.9 {
				t.Errorf("similarityThreshold = %v, want default 0.9", captured.SimilarityThreshold)
			}
		})
	}
}

func TestSearchUnreachableServerIsMiss(t *testing.T) {
	client := NewClient(Config{ServerURL: "http://127.0.0.1:1", CacheID: "cache-1"})
	if _, hit := client.Search(context.Background(), "anything"); hit {
		t.Error("Search() hit = true, want miss on connection failure")
	}
}

func TestSave(t *testing.T) {
	var captured setRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/caches/cache-1/entries" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(Config{ServerURL: srv.URL, CacheID: "cache-1"})
	client.Save(context.Background(), "red dress", "try our linen dress")

	if captured.Prompt != "red dress" || captured.Response != "try our linen dress" {
		t.Errorf("saved = %+v", captured)
	}
}
