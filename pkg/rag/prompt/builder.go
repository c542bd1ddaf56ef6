// Package prompt renders the LLM prompts used by the chat pipeline.
package prompt

import (
	"fmt"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/pkg/vectorstore"
)

// BuildContext renders retrieved products as a numbered context block. An
// empty candidate list yields a fixed no-matches marker so the answer prompt
// stays grounded instead of hallucinating inventory.
func BuildContext(candidates []vectorstore.ScoredPoint) string {
	if len(candidates) == 0 {
		return constant.EmptyContextMessage
	}

	var sb strings.Builder
	for i, point := range candidates {
		p := point.Payload
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d. Product Name: %s\n", i+1, p.Name)
		fmt.Fprintf(&sb, "   Categories: %s\n", p.Categories)
		fmt.Fprintf(&sb, "   Price: %.2f\n", p.Price)
		fmt.Fprintf(&sb, "   Rating: %.1f\n", p.Rating)
		fmt.Fprintf(&sb, "   Description: %s\n", p.Description)
		fmt.Fprintf(&sb, "   Available Colors: %s\n", p.Colors)
		fmt.Fprintf(&sb, "   Available Sizes: %s", p.Sizes)
	}
	return sb.String()
}

// ForAnswer renders the grounded answer prompt.
func ForAnswer(contextBlock, query string) string {
	return fmt.Sprintf(constant.GroundedAnswerPrompt, contextBlock, query)
}

// ForChitchat renders the small-talk prompt.
func ForChitchat(query string) string {
	return fmt.Sprintf(constant.ChitchatPrompt, query)
}
