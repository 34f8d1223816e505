package models

// GenerateScheduleRequest drives one scheduling run for a provider/date.
type GenerateScheduleRequest struct {
	ProviderID       string   `json:"providerId"`
	Date             string   `json:"date"` // ISO calendar date; time-of-day ignored
	JobIDs           []string `json:"jobIds,omitempty"`
	ExcludeWorkerIDs []string `json:"excludeWorkerIds,omitempty"`
	CreatedBy        string   `json:"createdBy,omitempty"`
	Supersede        bool     `json:"supersede,omitempty"` // replace an existing pending proposal
}

// JobAssignment maps a job to its ordered worker list within a plan.
type JobAssignment struct {
	JobID     string   `json:"jobId"`
	WorkerIDs []string `json:"workerIds"`
}

// UnsatisfiedJob records a job the run could not place, with a reason code.
type UnsatisfiedJob struct {
	JobID  string `json:"jobId"`
	Reason string `json:"reason"`
}

// ScheduleRunResult is the contract returned by a scheduling run. Success is
// true whenever the run completed; Errors carries infrastructure failures only.
type ScheduleRunResult struct {
	Success     bool             `json:"success"`
	ProposalID  string           `json:"proposalId,omitempty"`
	Assignments []JobAssignment  `json:"assignments"`
	Unsatisfied []UnsatisfiedJob `json:"unsatisfied"`
	Errors      []string         `json:"errors"`
}

// ProposalModification replaces one job's worker list verbatim.
type ProposalModification struct {
	JobID     string   `json:"jobId"`
	WorkerIDs []string `json:"workerIds"`
}

// ModifyProposalRequest edits a pending proposal.
type ModifyProposalRequest struct {
	Modifications []ProposalModification `json:"modifications"`
}

// ProposalView is the review read model: the proposal plus its rows.
type ProposalView struct {
	Proposal    ScheduleProposal     `json:"proposal"`
	Assignments []ProposedAssignment `json:"assignments"`
}
