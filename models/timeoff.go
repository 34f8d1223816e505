package models

import "time"

// Time-off request statuses. Only approved requests exclude a worker
// from scheduling.
const (
	TimeOffPending  = "pending"
	TimeOffApproved = "approved"
	TimeOffDenied   = "denied"
)

// TimeOffRequest is a worker's absence interval, expressed as an inclusive
// range of calendar dates.
type TimeOffRequest struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	WorkerID   string    `bson:"worker_id" json:"worker_id"`
	StartDate  string    `bson:"start_date" json:"start_date"` // "2006-01-02"
	EndDate    string    `bson:"end_date" json:"end_date"`     // inclusive
	Status     string    `bson:"status" json:"status"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// CoversDate reports whether the request spans the given calendar date.
// ISO dates compare correctly as strings.
func (t TimeOffRequest) CoversDate(date string) bool {
	return t.StartDate <= date && date <= t.EndDate
}
