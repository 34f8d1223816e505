package proposalRepo

import (
	"context"
	"errors"
	"time"

	"fieldops/models"
)

// Sentinel errors surfaced to the scheduling service. Wrapped with %w so
// callers can match with errors.Is.
var (
	// ErrNotFound means the proposal does not exist.
	ErrNotFound = errors.New("proposal not found")
	// ErrNotPending means the proposal has already been approved or rejected.
	ErrNotPending = errors.New("proposal is no longer pending")
	// ErrPendingExists means a pending proposal already occupies the
	// (provider, date) slot.
	ErrPendingExists = errors.New("a pending proposal already exists for this provider and date")
)

// ProposalRepository persists ScheduleProposal and ProposedAssignment records
// and owns the approval transaction. At most one pending proposal per
// (provider, date) is enforced by a partial unique index.
type ProposalRepository interface {
	// CreateWithAssignments persists a proposal and its assignment rows.
	// When supersede is true an existing pending proposal for the same
	// provider/date is first marked rejected; otherwise the call fails with
	// ErrPendingExists.
	CreateWithAssignments(ctx context.Context, proposal *models.ScheduleProposal, assignments []models.ProposedAssignment, supersede bool) error

	GetByID(proposalID string) (*models.ScheduleProposal, error)
	GetAssignments(proposalID string) ([]models.ProposedAssignment, error)

	// UpdateAssignments replaces worker lists verbatim, one entry per job,
	// in a single transaction that re-checks the proposal is still pending.
	// A racing approval or an unknown job id aborts the whole batch.
	UpdateAssignments(ctx context.Context, proposalID string, mods []models.ProposalModification) error

	// Approve transitions the proposal to approved and writes every
	// assignment's worker list into its job, atomically per proposal.
	Approve(ctx context.Context, proposalID string) error
	// Reject transitions the proposal to rejected; jobs are untouched.
	Reject(ctx context.Context, proposalID string) error

	// ListPendingOlderThan returns pending proposals created before the cutoff.
	ListPendingOlderThan(cutoff time.Time) ([]models.ScheduleProposal, error)
}
