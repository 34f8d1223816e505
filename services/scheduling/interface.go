package scheduling

import (
	"context"

	availabilityRepo "fieldops/database/repository/availability"
	jobRepo "fieldops/database/repository/job"
	proposalRepo "fieldops/database/repository/proposal"
	providerRepo "fieldops/database/repository/provider"
	workerRepo "fieldops/database/repository/worker"
	"fieldops/models"
	"fieldops/services/notification"

	"github.com/go-redis/redis/v8"
)

// SchedulingService is the automated job-scheduling and proposal engine.
type SchedulingService interface {
	// GenerateSchedule runs one scheduling pass for a provider/date and
	// persists the outcome as a pending proposal.
	GenerateSchedule(ctx context.Context, req models.GenerateScheduleRequest) (*models.ScheduleRunResult, error)
	// ResolveAvailability returns the eligible worker ids for a provider/date.
	ResolveAvailability(providerID, date string, excludeWorkerIDs []string) ([]string, error)
	// ModifyProposal replaces worker lists on a pending proposal (human override).
	ModifyProposal(ctx context.Context, proposalID string, mods []models.ProposalModification) error
	// ApproveProposal commits a pending proposal's assignments to its jobs.
	ApproveProposal(ctx context.Context, proposalID string) error
	// RejectProposal discards a pending proposal without touching jobs.
	RejectProposal(ctx context.Context, proposalID string) error
	// GetProposal returns the review view of a proposal.
	GetProposal(proposalID string) (*models.ProposalView, error)
}

// RunLocker serializes proposal creation per (provider, date) across
// instances. Acquire returns a release func, or an error when the slot is
// already held.
type RunLocker interface {
	Acquire(ctx context.Context, providerID, date string) (func(), error)
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Workers      workerRepo.WorkerRepository
	Providers    providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
	Jobs         jobRepo.JobRepository
	Proposals    proposalRepo.ProposalRepository

	Locks    RunLocker                        // optional; the pending unique index still guards when nil
	Cache    *redis.Client                    // optional proposal review cache
	Notifier notification.NotificationService // optional; delivery is external
}
