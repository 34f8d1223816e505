package workerRepo

import "fieldops/models"

// WorkerRepository exposes the worker/skill directory. The scheduler reads it
// as an immutable snapshot; writes come from provider-facing management only.
type WorkerRepository interface {
	GetByID(workerID string) (*models.Worker, error)
	GetByProvider(providerID string, activeOnly bool) ([]models.Worker, error)
	Create(worker *models.Worker) error
	SetActive(workerID string, active bool) error
}
