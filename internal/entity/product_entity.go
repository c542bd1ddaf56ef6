package entity

// ProductRecord is an immutable snapshot of one catalog product as of
// indexing time, with relational NULLs already resolved to defaults.
// Categories, Sizes and Colors are comma-joined aggregates ("S, M, L").
type ProductRecord struct {
	ID            int64
	Name          string
	Description   string
	Slug          string
	Price         float64
	OriginalPrice float64
	Image         string
	Rating        float64
	ReviewCount   int
	Categories    string
	Sizes         string
	Colors        string
}
