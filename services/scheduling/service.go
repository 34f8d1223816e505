package scheduling

import (
	"context"
	"errors"
	"sync"

	proposalRepo "fieldops/database/repository/proposal"
	"fieldops/models"
	"fieldops/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateSchedule runs one scheduling pass: resolve availability and the
// workload concurrently, build the greedy assignment plan, and persist the
// outcome as a pending proposal with one row per job. Constraint-level gaps
// (unsatisfied jobs, empty availability) land in the result payload; only
// infrastructure failures are returned as errors, and a cancelled context
// means nothing is persisted.
func (s *DefaultSchedulingService) GenerateSchedule(ctx context.Context, req models.GenerateScheduleRequest) (*models.ScheduleRunResult, error) {
	logger := utils.GetLogger()

	if err := validateGenerateRequest(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	if s.Locks != nil {
		release, err := s.Locks.Acquire(ctx, req.ProviderID, date)
		if err != nil {
			if errors.Is(err, utils.ErrScheduleLockHeld) {
				return nil, newConflictError("another scheduling run is in progress for this provider and date", err)
			}
			return nil, newPersistenceError("failed to acquire scheduling run lock", err)
		}
		defer release()
	}

	provider, err := s.Providers.GetByID(req.ProviderID)
	if err != nil {
		return nil, newNotFoundError("provider not found", err)
	}

	// Availability and workload share no state; run them concurrently.
	var (
		roster, eligible []models.Worker
		jobs             []models.Job
		availErr, jobErr error
	)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		roster, eligible, availErr = s.resolveWorkers(req.ProviderID, date, req.ExcludeWorkerIDs)
	}()
	go func() {
		defer wg.Done()
		jobs, jobErr = s.buildWorkload(req.ProviderID, date, req.JobIDs)
	}()
	wg.Wait()

	if availErr != nil {
		return nil, newPersistenceError("availability lookup failed", availErr)
	}
	if jobErr != nil {
		return nil, newPersistenceError("workload lookup failed", jobErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assignments, unsatisfied := BuildAssignmentPlan(jobs, eligible, roster, provider.ConcurrentJobLimit())

	result := &models.ScheduleRunResult{
		Success:     true,
		Assignments: assignments,
		Unsatisfied: unsatisfied,
		Errors:      []string{},
	}

	// Nothing to schedule: report the empty run without creating a proposal.
	if len(jobs) == 0 {
		logger.Info("scheduling run found no jobs to assign",
			zap.String("providerID", req.ProviderID), zap.String("date", date))
		return result, nil
	}

	proposal := &models.ScheduleProposal{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		Date:       date,
		CreatedBy:  req.CreatedBy,
	}
	rows := buildProposalRows(proposal.ID, assignments, unsatisfied)

	// All-or-nothing per run: a cancelled caller must not leave a proposal.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Proposals.CreateWithAssignments(ctx, proposal, rows, req.Supersede); err != nil {
		if errors.Is(err, proposalRepo.ErrPendingExists) {
			return nil, newConflictError("a pending proposal already exists for this provider and date", err)
		}
		return nil, newPersistenceError("failed to persist schedule proposal", err)
	}
	result.ProposalID = proposal.ID

	s.cacheProposalView(&models.ProposalView{Proposal: *proposal, Assignments: rows})

	if s.Notifier != nil {
		if err := s.Notifier.ProposalCreated(*proposal, len(unsatisfied)); err != nil {
			logger.Warn("proposal-created notification failed",
				zap.String("proposalID", proposal.ID), zap.Error(err))
		}
	}

	logger.Info("scheduling run completed",
		zap.String("providerID", req.ProviderID),
		zap.String("date", date),
		zap.String("proposalID", proposal.ID),
		zap.Int("assigned", len(assignments)),
		zap.Int("unsatisfied", len(unsatisfied)),
	)
	return result, nil
}

// buildProposalRows produces one ProposedAssignment per job in the plan,
// recording unsatisfied jobs with an empty worker list and their reason code
// so reviewers see the gap.
func buildProposalRows(proposalID string, assignments []models.JobAssignment, unsatisfied []models.UnsatisfiedJob) []models.ProposedAssignment {
	rows := make([]models.ProposedAssignment, 0, len(assignments)+len(unsatisfied))
	for _, a := range assignments {
		rows = append(rows, models.ProposedAssignment{
			ID:         uuid.New().String(),
			ProposalID: proposalID,
			JobID:      a.JobID,
			WorkerIDs:  a.WorkerIDs,
		})
	}
	for _, u := range unsatisfied {
		rows = append(rows, models.ProposedAssignment{
			ID:         uuid.New().String(),
			ProposalID: proposalID,
			JobID:      u.JobID,
			WorkerIDs:  []string{},
			Reason:     u.Reason,
		})
	}
	return rows
}
