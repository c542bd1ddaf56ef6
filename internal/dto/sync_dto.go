package dto

// Sync trigger actions.
const (
	SyncActionUpdate    = "update"
	SyncActionDelete    = "delete"
	SyncActionUpdateAll = "update_all"
)

// ProductSyncRequest triggers synchronization for one product or the
// whole catalog. ProductID is required for update/delete.
type ProductSyncRequest struct {
	ProductID *int64 `json:"product_id"`
	Action    string `json:"action" validate:"required,oneof=update delete update_all"`
}

// BulkProduct is one storefront product in the bulk sync payload. Only
// the id is needed to queue the job; the remaining fields document the
// caller's contract and are re-read from the database during sync.
type BulkProduct struct {
	ID            int64    `json:"id" validate:"required"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	Categories    []string `json:"categories"`
	Slug          string   `json:"slug"`
}

// BulkSyncRequest queues a targeted sync over the given products.
type BulkSyncRequest struct {
	Products []BulkProduct `json:"products" validate:"required,min=1,dive"`
}

// SyncResponse acknowledges that a sync job was queued.
type SyncResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SyncJobMessage is the queued background job payload.
type SyncJobMessage struct {
	JobID      string  `json:"job_id"`
	Action     string  `json:"action"`
	ProductIDs []int64 `json:"product_ids,omitempty"`
}
