package jobRepo

import "fieldops/models"

// JobRepository exposes the job directory. The scheduler only reads; the
// write path for assigned workers lives in the proposal repository's
// approval transaction.
type JobRepository interface {
	GetByID(jobID string) (*models.Job, error)
	// GetSchedulable returns the provider's non-terminal jobs whose scheduled
	// window falls on the given date.
	GetSchedulable(providerID, date string) ([]models.Job, error)
	GetByIDs(jobIDs []string) ([]models.Job, error)
	Create(job *models.Job) error
}
