package models

import "time"

// BlockedTime marks an interval during which no assignment may occur.
// A block with an empty WorkerID applies to every worker of the provider.
type BlockedTime struct {
	BlockID    string    `bson:"block_id" json:"block_id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	WorkerID   string    `bson:"worker_id,omitempty" json:"worker_id,omitempty"`
	Date       string    `bson:"date" json:"date"`   // e.g., "2026-03-14"
	Start      int       `bson:"start" json:"start"` // minutes from midnight
	End        int       `bson:"end" json:"end"`     // minutes from midnight
	Reason     string    `bson:"reason" json:"reason"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Covers reports whether the block applies to the given worker.
func (b BlockedTime) Covers(workerID string) bool {
	return b.WorkerID == "" || b.WorkerID == workerID
}
