package scheduling

import (
	"context"
	"errors"

	proposalRepo "fieldops/database/repository/proposal"
	"fieldops/models"
	"fieldops/utils"

	"go.uber.org/zap"
)

// ModifyProposal applies a set of (job id, worker list) overrides to a
// pending proposal. Each replacement is verbatim — the editor does not
// re-validate skill match or overlap against the rest of the proposal, since
// this is an explicit human override. The whole batch is applied in one
// repository transaction that re-checks the proposal is still pending, so a
// racing approval or a bad entry leaves no row modified. The proposal stays
// pending so it still requires review.
func (s *DefaultSchedulingService) ModifyProposal(ctx context.Context, proposalID string, mods []models.ProposalModification) error {
	if proposalID == "" {
		return NewInvalidInputError("proposalId is required")
	}
	if len(mods) == 0 {
		return NewInvalidInputError("at least one modification is required")
	}
	normalized := make([]models.ProposalModification, 0, len(mods))
	for _, m := range mods {
		if m.JobID == "" {
			return NewInvalidInputError("each modification requires a jobId")
		}
		if m.WorkerIDs == nil {
			m.WorkerIDs = []string{}
		}
		normalized = append(normalized, m)
	}

	if err := s.Proposals.UpdateAssignments(ctx, proposalID, normalized); err != nil {
		return mapProposalError(err, "failed to modify proposal")
	}

	s.invalidateProposalView(proposalID)
	utils.GetLogger().Info("proposal modified",
		zap.String("proposalID", proposalID), zap.Int("modifications", len(mods)))
	return nil
}

// mapProposalError translates repository sentinels into typed service errors.
func mapProposalError(err error, msg string) error {
	switch {
	case errors.Is(err, proposalRepo.ErrNotFound):
		return newNotFoundError("proposal not found", err)
	case errors.Is(err, proposalRepo.ErrNotPending):
		return newConflictError("proposal has already been approved or rejected", err)
	default:
		return newPersistenceError(msg, err)
	}
}
