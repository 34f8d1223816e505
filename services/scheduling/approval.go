package scheduling

import (
	"context"

	"fieldops/models"
	"fieldops/utils"

	"go.uber.org/zap"
)

// ApproveProposal commits a pending proposal: its status flips to approved
// and every proposed worker list becomes the job's authoritative assignment.
// The underlying write is atomic per proposal — a mid-approval failure leaves
// zero jobs updated.
func (s *DefaultSchedulingService) ApproveProposal(ctx context.Context, proposalID string) error {
	if proposalID == "" {
		return NewInvalidInputError("proposalId is required")
	}
	if err := s.Proposals.Approve(ctx, proposalID); err != nil {
		return mapProposalError(err, "failed to approve proposal")
	}
	s.invalidateProposalView(proposalID)
	utils.GetLogger().Info("proposal approved", zap.String("proposalID", proposalID))
	return nil
}

// RejectProposal discards a pending proposal. No job records are touched.
func (s *DefaultSchedulingService) RejectProposal(ctx context.Context, proposalID string) error {
	if proposalID == "" {
		return NewInvalidInputError("proposalId is required")
	}
	if err := s.Proposals.Reject(ctx, proposalID); err != nil {
		return mapProposalError(err, "failed to reject proposal")
	}
	s.invalidateProposalView(proposalID)
	utils.GetLogger().Info("proposal rejected", zap.String("proposalID", proposalID))
	return nil
}

// GetProposal returns the review view of a proposal, served from the cache
// when a fresh copy is there.
func (s *DefaultSchedulingService) GetProposal(proposalID string) (*models.ProposalView, error) {
	if proposalID == "" {
		return nil, NewInvalidInputError("proposalId is required")
	}
	if view := s.cachedProposalView(proposalID); view != nil {
		return view, nil
	}

	proposal, err := s.Proposals.GetByID(proposalID)
	if err != nil {
		return nil, mapProposalError(err, "failed to fetch proposal")
	}
	assignments, err := s.Proposals.GetAssignments(proposalID)
	if err != nil {
		return nil, newPersistenceError("failed to fetch proposed assignments", err)
	}

	view := &models.ProposalView{Proposal: *proposal, Assignments: assignments}
	s.cacheProposalView(view)
	return view, nil
}
