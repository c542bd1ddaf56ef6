package prompt

import (
	"strings"
	"testing"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/pkg/vectorstore"
)

func TestBuildContextEmpty(t *testing.T) {
	got := BuildContext(nil)
	if got != constant.EmptyContextMessage {
		t.Errorf("BuildContext(nil) = %q, want %q", got, constant.EmptyContextMessage)
	}
}

func TestBuildContextNumbersBlocks(t *testing.T) {
	candidates := []vectorstore.ScoredPoint{
		{Payload: vectorstore.ProductPayload{
			Name:        "Linen Summer Dress",
			Categories:  "Dresses, Summer",
			Price:       59.99,
			Rating:      4.5,
			Description: "A breezy linen dress.",
			Colors:      "White, Beige",
			Sizes:       "S, M, L",
		}},
		{Payload: vectorstore.ProductPayload{
			Name:   "Canvas Sneakers",
			Price:  39.9,
			Rating: 4,
		}},
	}

	got := BuildContext(candidates)

	for _, want := range []string{
		"1. Product Name: Linen Summer Dress",
		"Categories: Dresses, Summer",
		"Price: 59.99",
		"Rating: 4.5",
		"Available Colors: White, Beige",
		"Available Sizes: S, M, L",
		"2. Product Name: Canvas Sneakers",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildContext() missing %q in:\n%s", want, got)
		}
	}
}

func TestForAnswerEmbedsContextAndQuery(t *testing.T) {
	got := ForAnswer("CONTEXT_BLOCK", "red dress")
	if !strings.Contains(got, "CONTEXT_BLOCK") || !strings.Contains(got, "red dress") {
		t.Errorf("ForAnswer() did not embed context and query")
	}
}

func TestForChitchatEmbedsQuery(t *testing.T) {
	if got := ForChitchat("hello there"); !strings.Contains(got, "hello there") {
		t.Errorf("ForChitchat() did not embed query")
	}
}
