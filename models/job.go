package models

import "time"

// Job lifecycle statuses.
const (
	JobScheduled  = "scheduled"
	JobConfirmed  = "confirmed"
	JobDispatched = "dispatched"
	JobInProgress = "in-progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// Job is a unit of billable work. The scheduler mutates a job only through
// AssignedUserIDs, and only via proposal approval.
type Job struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"provider_id" json:"provider_id"`
	CustomerID      string    `bson:"customer_id" json:"customer_id"`
	ServiceType     string    `bson:"service_type" json:"service_type"`
	Date            string    `bson:"date" json:"date"`   // "2006-01-02"
	Start           int       `bson:"start" json:"start"` // minutes from midnight
	End             int       `bson:"end" json:"end"`     // minutes from midnight
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	RequiredWorkers int       `bson:"required_workers,omitempty" json:"required_workers,omitempty"` // defaults to 1
	Status          string    `bson:"status" json:"status"`
	AssignedUserIDs []string  `bson:"assigned_user_ids,omitempty" json:"assigned_user_ids,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}

// IsTerminal reports whether the job can no longer enter scheduling.
func (j Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobCancelled
}

// WorkersNeeded returns the number of workers the job calls for, at least one.
func (j Job) WorkersNeeded() int {
	if j.RequiredWorkers < 1 {
		return 1
	}
	return j.RequiredWorkers
}

// Overlaps reports whether two jobs' time windows intersect on the same date.
func (j Job) Overlaps(other Job) bool {
	return j.Date == other.Date && j.Start < other.End && other.Start < j.End
}
