package models

import "time"

// Provider owns workers and jobs. SlotCapacity is the configured number of
// jobs a single worker may hold concurrently; zero means the default of one.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Status       string    `bson:"status,omitempty" json:"status,omitempty"`
	SlotCapacity int       `bson:"slot_capacity,omitempty" json:"slot_capacity,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}

// ConcurrentJobLimit returns the per-worker same-slot capacity, at least one.
func (p Provider) ConcurrentJobLimit() int {
	if p.SlotCapacity < 1 {
		return 1
	}
	return p.SlotCapacity
}
