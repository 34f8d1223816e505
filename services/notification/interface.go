package notification

import (
	"fieldops/models"
	"fieldops/utils"

	"go.uber.org/zap"
)

// NotificationService is the boundary to the (external) delivery system.
// This core only decides when to notify; how the message reaches a reviewer
// is somebody else's problem.
type NotificationService interface {
	ProposalCreated(proposal models.ScheduleProposal, unsatisfiedCount int) error
	ProposalPendingReminder(proposal models.ScheduleProposal) error
}

// LogNotificationService is the default sink: it records the notification in
// the service log. Swap in a real delivery implementation at wiring time.
type LogNotificationService struct{}

func (n *LogNotificationService) ProposalCreated(proposal models.ScheduleProposal, unsatisfiedCount int) error {
	utils.GetLogger().Info("notify: schedule proposal awaiting review",
		zap.String("proposalID", proposal.ID),
		zap.String("providerID", proposal.ProviderID),
		zap.String("date", proposal.Date),
		zap.Int("unsatisfied", unsatisfiedCount),
	)
	return nil
}

func (n *LogNotificationService) ProposalPendingReminder(proposal models.ScheduleProposal) error {
	utils.GetLogger().Info("notify: schedule proposal still pending",
		zap.String("proposalID", proposal.ID),
		zap.String("providerID", proposal.ProviderID),
		zap.String("date", proposal.Date),
	)
	return nil
}
