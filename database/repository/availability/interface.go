package availabilityRepo

import "fieldops/models"

// AvailabilityRepository serves the availability records feeding the resolver:
// blocked-time intervals and time-off requests. Reads are scoped to a
// provider/date; writes come from provider-facing management.
type AvailabilityRepository interface {
	GetBlockedByProviderAndDate(providerID, date string) ([]models.BlockedTime, error)
	CreateBlocked(block *models.BlockedTime) error
	DeleteBlocked(blockID string) error

	GetApprovedTimeOff(providerID, date string) ([]models.TimeOffRequest, error)
	ListTimeOff(providerID string) ([]models.TimeOffRequest, error)
	CreateTimeOff(request *models.TimeOffRequest) error
	SetTimeOffStatus(requestID, status string) error
}
