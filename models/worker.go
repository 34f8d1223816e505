package models

import "time"

// Worker is a provider-affiliated field worker. The scheduler treats workers
// as a read-only snapshot for the duration of a run.
type Worker struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Name       string    `bson:"name" json:"name"`
	Skills     []string  `bson:"skills" json:"skills"` // service types this worker can perform
	Active     bool      `bson:"active" json:"active"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}

// HasSkill reports whether the worker can perform the given service type.
func (w Worker) HasSkill(serviceType string) bool {
	for _, s := range w.Skills {
		if s == serviceType {
			return true
		}
	}
	return false
}
