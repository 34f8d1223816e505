package models

import "time"

// Schedule proposal statuses. Approved and rejected are terminal.
const (
	ProposalPending  = "pending"
	ProposalApproved = "approved"
	ProposalRejected = "rejected"
)

// Reason codes recorded for jobs the assignment pass could not satisfy.
const (
	ReasonNoSkillMatch      = "no_skill_match"
	ReasonNoAvailableWorker = "no_available_worker"
	ReasonAllConflicted     = "all_conflicted"
)

// ScheduleProposal is one scheduling run's reviewable output for a
// provider/date. At most one proposal per (provider, date) may be pending.
type ScheduleProposal struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	Date         string    `bson:"date" json:"date"` // "2006-01-02"
	Status       string    `bson:"status" json:"status"`
	CreatedBy    string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
	SupersededBy string    `bson:"superseded_by,omitempty" json:"superseded_by,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}

// IsTerminal reports whether the proposal can no longer change.
func (p ScheduleProposal) IsTerminal() bool {
	return p.Status == ProposalApproved || p.Status == ProposalRejected
}

// ProposedAssignment is one job's row within a proposal. Unsatisfied jobs are
// recorded with an empty worker list and a reason code so reviewers see the gap.
type ProposedAssignment struct {
	ID         string    `bson:"id" json:"id"`
	ProposalID string    `bson:"proposal_id" json:"proposal_id"`
	JobID      string    `bson:"job_id" json:"job_id"`
	WorkerIDs  []string  `bson:"worker_ids" json:"worker_ids"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at,omitzero"`
}
