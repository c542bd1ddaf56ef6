package events

import "time"

// Catalog sync jobs run asynchronously; the HTTP call that queued them has
// already returned. These events are the out-of-band monitoring channel
// for job outcomes.

const (
	TypeSyncCompleted = "sync.completed"
	TypeSyncFailed    = "sync.failed"
)

// SyncEvent describes the outcome of a single catalog sync job.
type SyncEvent struct {
	Type       string    `json:"-"`
	JobID      string    `json:"job_id"`
	Action     string    `json:"action"`
	ProductIDs []int64   `json:"product_ids,omitempty"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SyncCompleted is emitted when a catalog sync job finishes successfully.
func SyncCompleted(jobID, action string, productIDs []int64) SyncEvent {
	return SyncEvent{
		Type:       TypeSyncCompleted,
		JobID:      jobID,
		Action:     action,
		ProductIDs: productIDs,
		OccurredAt: time.Now(),
	}
}

// SyncFailed is emitted when a catalog sync job aborts with an error.
func SyncFailed(jobID, action string, productIDs []int64, err error) SyncEvent {
	return SyncEvent{
		Type:       TypeSyncFailed,
		JobID:      jobID,
		Action:     action,
		ProductIDs: productIDs,
		Error:      err.Error(),
		OccurredAt: time.Now(),
	}
}
