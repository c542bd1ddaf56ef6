package dto

// ChatRequest is the payload for incoming chat requests from the
// storefront backend.
type ChatRequest struct {
	SessionID int64  `json:"session_id" validate:"required"`
	Query     string `json:"query" validate:"required,min=1"`
}

// ProductColor is one selectable color. Hex stays empty unless the index
// stores real hex codes.
type ProductColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ProductSummary is the response-facing projection of a retrieval
// candidate, shaped for the storefront UI.
type ProductSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Image       *string        `json:"image"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"reviewCount"`
	Colors      []ProductColor `json:"colors"`
	Sizes       []string       `json:"sizes"`
}
