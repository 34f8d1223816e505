package scheduling

import (
	"context"
	"testing"

	"fieldops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioFixture generates the baseline proposal most editor tests start
// from: worker-a on job-1, worker-b on job-2, job-3 unsatisfied.
func scenarioFixture(t *testing.T) (*fixture, string) {
	t.Helper()
	f := newFixture(
		[]models.Worker{landscaper("worker-a"), cleaner("worker-b")},
		[]models.Job{
			jobAt("job-1", "landscaping", 540, 660),
			jobAt("job-2", "cleaning", 540, 660),
			jobAt("job-3", "landscaping", 600, 660),
		},
	)
	result, err := f.svc.GenerateSchedule(context.Background(), generateReq())
	require.NoError(t, err)
	return f, result.ProposalID
}

func assignmentsByJob(t *testing.T, f *fixture, proposalID string) map[string]models.ProposedAssignment {
	t.Helper()
	rows, err := f.proposals.GetAssignments(proposalID)
	require.NoError(t, err)
	byJob := make(map[string]models.ProposedAssignment, len(rows))
	for _, row := range rows {
		byJob[row.JobID] = row
	}
	return byJob
}

func TestModifyProposalHumanOverride(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	// A dispatcher forces worker-b onto the unsatisfied job-3; the editor
	// accepts the override verbatim even though worker-b lacks the skill.
	err := f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{JobID: "job-3", WorkerIDs: []string{"worker-b"}},
	})
	require.NoError(t, err)

	byJob := assignmentsByJob(t, f, proposalID)
	assert.Equal(t, []string{"worker-b"}, byJob["job-3"].WorkerIDs)
	assert.Empty(t, byJob["job-3"].Reason)

	// The proposal still awaits review.
	proposal, err := f.proposals.GetByID(proposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalPending, proposal.Status)
}

func TestModifyProposalClearsAssignment(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	err := f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{JobID: "job-1", WorkerIDs: nil},
	})
	require.NoError(t, err)

	byJob := assignmentsByJob(t, f, proposalID)
	assert.Equal(t, []string{}, byJob["job-1"].WorkerIDs)
}

func TestModifyProposalBatchIsAtomic(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	// The second entry targets a job the proposal has no row for; the whole
	// batch must fail without applying the first entry.
	err := f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{JobID: "job-1", WorkerIDs: []string{"worker-b"}},
		{JobID: "job-unknown", WorkerIDs: []string{"worker-a"}},
	})
	require.Error(t, err)

	byJob := assignmentsByJob(t, f, proposalID)
	assert.Equal(t, []string{"worker-a"}, byJob["job-1"].WorkerIDs)
}

func TestModifyProposalEmptyListKeepsReason(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	// Editing the unsatisfied row down to an empty list keeps the gap's
	// reason visible; only an edit that places workers clears it.
	err := f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{JobID: "job-3", WorkerIDs: []string{}},
	})
	require.NoError(t, err)

	byJob := assignmentsByJob(t, f, proposalID)
	assert.Equal(t, []string{}, byJob["job-3"].WorkerIDs)
	assert.Equal(t, models.ReasonAllConflicted, byJob["job-3"].Reason)
}

func TestModifyProposalValidation(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	err := f.svc.ModifyProposal(context.Background(), proposalID, nil)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	err = f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{WorkerIDs: []string{"worker-a"}},
	})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestModifyProposalUnknownProposal(t *testing.T) {
	f, _ := scenarioFixture(t)

	err := f.svc.ModifyProposal(context.Background(), "nope", []models.ProposalModification{
		{JobID: "job-1", WorkerIDs: []string{"worker-a"}},
	})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestModifyProposalRejectedWhenTerminal(t *testing.T) {
	f, proposalID := scenarioFixture(t)
	require.NoError(t, f.svc.ApproveProposal(context.Background(), proposalID))

	err := f.svc.ModifyProposal(context.Background(), proposalID, []models.ProposalModification{
		{JobID: "job-1", WorkerIDs: []string{"worker-b"}},
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// No mutation happened.
	byJob := assignmentsByJob(t, f, proposalID)
	assert.Equal(t, []string{"worker-a"}, byJob["job-1"].WorkerIDs)
}

func TestApproveProposalCommitsAssignmentsToJobs(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	require.NoError(t, f.svc.ApproveProposal(context.Background(), proposalID))

	proposal, err := f.proposals.GetByID(proposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalApproved, proposal.Status)

	job1, err := f.jobs.GetByID("job-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"worker-a"}, job1.AssignedUserIDs)
	job2, err := f.jobs.GetByID("job-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"worker-b"}, job2.AssignedUserIDs)
	// The unsatisfied row carries an empty list through.
	job3, err := f.jobs.GetByID("job-3")
	require.NoError(t, err)
	assert.Empty(t, job3.AssignedUserIDs)

	// A second approval is a conflict, not a no-op.
	err = f.svc.ApproveProposal(context.Background(), proposalID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestApproveProposalAtomicOnFailure(t *testing.T) {
	f, proposalID := scenarioFixture(t)
	f.proposals.failApproveOnJob = "job-2"

	err := f.svc.ApproveProposal(context.Background(), proposalID)
	require.Error(t, err)

	// The transaction aborted: no job was updated and the proposal is still
	// pending, so the approval can be retried.
	for _, jobID := range []string{"job-1", "job-2", "job-3"} {
		job, err := f.jobs.GetByID(jobID)
		require.NoError(t, err)
		assert.Empty(t, job.AssignedUserIDs, "job %s must stay unassigned", jobID)
	}
	proposal, err := f.proposals.GetByID(proposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalPending, proposal.Status)

	f.proposals.failApproveOnJob = ""
	require.NoError(t, f.svc.ApproveProposal(context.Background(), proposalID))
}

func TestRejectProposalLeavesJobsUntouched(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	require.NoError(t, f.svc.RejectProposal(context.Background(), proposalID))

	proposal, err := f.proposals.GetByID(proposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, proposal.Status)
	for _, jobID := range []string{"job-1", "job-2", "job-3"} {
		job, err := f.jobs.GetByID(jobID)
		require.NoError(t, err)
		assert.Empty(t, job.AssignedUserIDs)
	}

	// Rejected is terminal: approval and further edits are conflicts.
	err = f.svc.ApproveProposal(context.Background(), proposalID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestRejectFreesSlotForNewRun(t *testing.T) {
	f, proposalID := scenarioFixture(t)
	require.NoError(t, f.svc.RejectProposal(context.Background(), proposalID))

	result, err := f.svc.GenerateSchedule(context.Background(), generateReq())
	require.NoError(t, err)
	assert.NotEqual(t, proposalID, result.ProposalID)
}

func TestGetProposalView(t *testing.T) {
	f, proposalID := scenarioFixture(t)

	view, err := f.svc.GetProposal(proposalID)
	require.NoError(t, err)
	assert.Equal(t, proposalID, view.Proposal.ID)
	assert.Len(t, view.Assignments, 3)

	_, err = f.svc.GetProposal("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
