package scheduling

import (
	"context"
	"errors"
	"testing"

	"fieldops/models"
	"fieldops/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *DefaultSchedulingService
	workers   *fakeWorkerRepo
	providers *fakeProviderRepo
	avail     *fakeAvailabilityRepo
	jobs      *fakeJobRepo
	proposals *fakeProposalRepo
}

func newFixture(workers []models.Worker, jobs []models.Job) *fixture {
	f := &fixture{
		workers:   &fakeWorkerRepo{workers: workers},
		providers: &fakeProviderRepo{providers: map[string]models.Provider{"prov-1": {ID: "prov-1", Name: "Evergreen Field Services"}}},
		avail:     &fakeAvailabilityRepo{},
		jobs:      &fakeJobRepo{jobs: jobs},
	}
	f.proposals = newFakeProposalRepo(f.jobs)
	f.svc = &DefaultSchedulingService{
		Workers:      f.workers,
		Providers:    f.providers,
		Availability: f.avail,
		Jobs:         f.jobs,
		Proposals:    f.proposals,
	}
	return f
}

func generateReq() models.GenerateScheduleRequest {
	return models.GenerateScheduleRequest{ProviderID: "prov-1", Date: "2026-03-14"}
}

func TestGenerateSchedulePersistsProposalWithGaps(t *testing.T) {
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
	assert.True(t, result.Success)
	require.NotEmpty(t, result.ProposalID)

	require.Len(t, result.Assignments, 2)
	assert.Equal(t, []string{"worker-a"}, result.Assignments[0].WorkerIDs)
	assert.Equal(t, []string{"worker-b"}, result.Assignments[1].WorkerIDs)
	require.Len(t, result.Unsatisfied, 1)
	assert.Equal(t, models.UnsatisfiedJob{JobID: "job-3", Reason: models.ReasonAllConflicted}, result.Unsatisfied[0])

	proposal, err := f.proposals.GetByID(result.ProposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalPending, proposal.Status)
	assert.Equal(t, "prov-1", proposal.ProviderID)
	assert.Equal(t, "2026-03-14", proposal.Date)

	rows, err := f.proposals.GetAssignments(result.ProposalID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	byJob := make(map[string]models.ProposedAssignment, len(rows))
	for _, row := range rows {
		byJob[row.JobID] = row
	}
	assert.Equal(t, []string{"worker-a"}, byJob["job-1"].WorkerIDs)
	assert.Equal(t, []string{"worker-b"}, byJob["job-2"].WorkerIDs)
	// The unsatisfied job is recorded with an empty list, never omitted.
	assert.Equal(t, []string{}, byJob["job-3"].WorkerIDs)
	assert.Equal(t, models.ReasonAllConflicted, byJob["job-3"].Reason)
}

func TestGenerateScheduleTimeOffReadsAsUnavailable(t *testing.T) {
	// The only landscaper has approved time-off spanning the date: the job is
	// unsatisfied for lack of availability, not lack of skill.
	f := newFixture(
		[]models.Worker{landscaper("worker-a"), cleaner("worker-b")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 660)},
	)
	f.avail.timeOff = []models.TimeOffRequest{
		{
			ID: "to-1", ProviderID: "prov-1", WorkerID: "worker-a",
			StartDate: "2026-03-13", EndDate: "2026-03-15",
			Status: models.TimeOffApproved,
		},
	}

	result, err := f.svc.GenerateSchedule(context.Background(), generateReq())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Assignments)
	require.Len(t, result.Unsatisfied, 1)
	assert.Equal(t, models.ReasonNoAvailableWorker, result.Unsatisfied[0].Reason)
}

func TestGenerateScheduleNoWorkersStillSucceeds(t *testing.T) {
	f := newFixture(nil, []models.Job{jobAt("job-1", "landscaping", 540, 660)})

	result, err := f.svc.GenerateSchedule(context.Background(), generateReq())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Assignments)
	require.Len(t, result.Unsatisfied, 1)
	assert.Equal(t, models.ReasonNoAvailableWorker, result.Unsatisfied[0].Reason)
	assert.NotEmpty(t, result.ProposalID)
}

func TestGenerateScheduleEmptyWorkloadSkipsProposal(t *testing.T) {
	f := newFixture([]models.Worker{landscaper("worker-a")}, nil)

	result, err := f.svc.GenerateSchedule(context.Background(), generateReq())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.ProposalID)
	assert.Empty(t, f.proposals.proposals)
}

func TestGenerateScheduleInvalidInput(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.svc.GenerateSchedule(context.Background(), models.GenerateScheduleRequest{Date: "2026-03-14"})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	_, err = f.svc.GenerateSchedule(context.Background(), models.GenerateScheduleRequest{ProviderID: "prov-1", Date: "not-a-date"})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	assert.Empty(t, f.proposals.proposals)
}

func TestGenerateScheduleUnknownProvider(t *testing.T) {
	f := newFixture(nil, nil)

	req := generateReq()
	req.ProviderID = "prov-missing"
	_, err := f.svc.GenerateSchedule(context.Background(), req)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGenerateScheduleCancelledContextPersistsNothing(t *testing.T) {
	f := newFixture(
		[]models.Worker{landscaper("worker-a")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 660)},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.GenerateSchedule(ctx, generateReq())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.proposals.proposals)
}

func TestGenerateSchedulePendingConflictAndSupersede(t *testing.T) {
	f := newFixture(
		[]models.Worker{landscaper("worker-a")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 660)},
	)

	first, err := f.svc.GenerateSchedule(context.Background(), generateReq())
	require.NoError(t, err)

	// A second run for the same slot must fail while the first is pending.
	_, err = f.svc.GenerateSchedule(context.Background(), generateReq())
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// Explicit supersession replaces the pending proposal.
	req := generateReq()
	req.Supersede = true
	second, err := f.svc.GenerateSchedule(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ProposalID, second.ProposalID)

	old, err := f.proposals.GetByID(first.ProposalID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, old.Status)
	assert.Equal(t, second.ProposalID, old.SupersededBy)

	pending := f.proposals.pendingFor("prov-1", "2026-03-14")
	require.NotNil(t, pending)
	assert.Equal(t, second.ProposalID, pending.ID)
}

func TestGenerateScheduleIdempotentPlans(t *testing.T) {
	workers := []models.Worker{landscaper("worker-a"), landscaper("worker-b"), cleaner("worker-c")}
	jobs := []models.Job{
		jobAt("job-1", "landscaping", 480, 600),
		jobAt("job-2", "cleaning", 480, 600),
		jobAt("job-3", "landscaping", 540, 660),
		jobAt("job-4", "landscaping", 600, 720),
	}

	f := newFixture(workers, jobs)
	first, err := f.svc.GenerateSchedule(context.Background(), generateReq())
	require.NoError(t, err)

	req := generateReq()
	req.Supersede = true
	second, err := f.svc.GenerateSchedule(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Unsatisfied, second.Unsatisfied)
}

func TestGenerateScheduleExplicitJobIDs(t *testing.T) {
	cancelled := jobAt("job-2", "landscaping", 600, 660)
	cancelled.Status = models.JobCancelled
	foreign := jobAt("job-3", "landscaping", 700, 760)
	foreign.ProviderID = "prov-other"

	f := newFixture(
		[]models.Worker{landscaper("worker-a")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 600), cancelled, foreign},
	)

	req := generateReq()
	req.JobIDs = []string{"job-1", "job-2", "job-3"}
	result, err := f.svc.GenerateSchedule(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "job-1", result.Assignments[0].JobID)
	assert.Empty(t, result.Unsatisfied)
}

func TestGenerateScheduleRespectsRunLock(t *testing.T) {
	f := newFixture(
		[]models.Worker{landscaper("worker-a")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 660)},
	)
	f.svc.Locks = &fakeLocker{err: utils.ErrScheduleLockHeld}

	_, err := f.svc.GenerateSchedule(context.Background(), generateReq())

	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Empty(t, f.proposals.proposals)

	f.svc.Locks = &fakeLocker{}
	_, err = f.svc.GenerateSchedule(context.Background(), generateReq())
	require.NoError(t, err)
	assert.True(t, f.svc.Locks.(*fakeLocker).released)
}

func TestGenerateScheduleLockInfrastructureFailure(t *testing.T) {
	// A redis failure while acquiring the lock is an infrastructure error,
	// not a slot conflict.
	f := newFixture(
		[]models.Worker{landscaper("worker-a")},
		[]models.Job{jobAt("job-1", "landscaping", 540, 660)},
	)
	f.svc.Locks = &fakeLocker{err: errors.New("redis: connection refused")}

	_, err := f.svc.GenerateSchedule(context.Background(), generateReq())

	require.Error(t, err)
	assert.False(t, IsConflict(err))
	assert.True(t, hasCode(err, CodePersistenceFailure))
	assert.Empty(t, f.proposals.proposals)
}

type fakeLocker struct {
	err      error
	released bool
}

func (f *fakeLocker) Acquire(ctx context.Context, providerID, date string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	return func() { f.released = true }, nil
}
