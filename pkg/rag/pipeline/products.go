package pipeline

import (
	"strconv"
	"strings"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/pkg/vectorstore"
)

// projectProducts maps retrieval candidates to the storefront product card
// shape. Numeric fields default to zero, image to null, and the aggregated
// color and size strings are split back into lists.
func projectProducts(candidates []vectorstore.ScoredPoint) []dto.ProductSummary {
	products := make([]dto.ProductSummary, 0, len(candidates))
	for _, point := range candidates {
		p := point.Payload

		var image *string
		if p.Image != "" {
			img := p.Image
			image = &img
		}

		products = append(products, dto.ProductSummary{
			ID:          strconv.FormatInt(p.ProductID, 10),
			Name:        p.Name,
			Price:       p.Price,
			Image:       image,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Colors:      parseColors(p.Colors),
			Sizes:       splitList(p.Sizes),
		})
	}
	return products
}

func parseColors(aggregated string) []dto.ProductColor {
	names := splitList(aggregated)
	colors := make([]dto.ProductColor, 0, len(names))
	for _, name := range names {
		colors = append(colors, dto.ProductColor{Name: name, Hex: ""})
	}
	return colors
}

func splitList(aggregated string) []string {
	parts := strings.Split(aggregated, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
