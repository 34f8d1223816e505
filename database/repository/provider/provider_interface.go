package providerRepo

import "fieldops/models"

// ProviderRepository is the read-side the scheduler needs: per-provider
// configuration such as the same-slot capacity.
type ProviderRepository interface {
	GetByID(providerID string) (*models.Provider, error)
	Create(provider *models.Provider) error
}
