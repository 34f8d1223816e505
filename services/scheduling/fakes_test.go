package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	proposalRepo "fieldops/database/repository/proposal"
	"fieldops/models"
)

// In-memory fakes for the repository boundaries. The proposal fake emulates
// the Mongo implementation's guarantees: the single-pending-per-slot
// constraint, conditional pending-only transitions, and transactional
// (all-or-nothing) approval.

type fakeWorkerRepo struct {
	workers []models.Worker
}

func (f *fakeWorkerRepo) GetByID(workerID string) (*models.Worker, error) {
	for i := range f.workers {
		if f.workers[i].ID == workerID {
			w := f.workers[i]
			return &w, nil
		}
	}
	return nil, fmt.Errorf("worker with id %s not found", workerID)
}

func (f *fakeWorkerRepo) GetByProvider(providerID string, activeOnly bool) ([]models.Worker, error) {
	var out []models.Worker
	for _, w := range f.workers {
		if w.ProviderID != providerID {
			continue
		}
		if activeOnly && !w.Active {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWorkerRepo) Create(worker *models.Worker) error {
	f.workers = append(f.workers, *worker)
	return nil
}

func (f *fakeWorkerRepo) SetActive(workerID string, active bool) error {
	for i := range f.workers {
		if f.workers[i].ID == workerID {
			f.workers[i].Active = active
			return nil
		}
	}
	return fmt.Errorf("worker with id %s not found", workerID)
}

type fakeProviderRepo struct {
	providers map[string]models.Provider
}

func (f *fakeProviderRepo) GetByID(providerID string) (*models.Provider, error) {
	p, ok := f.providers[providerID]
	if !ok {
		return nil, fmt.Errorf("provider with id %s not found", providerID)
	}
	return &p, nil
}

func (f *fakeProviderRepo) Create(provider *models.Provider) error {
	f.providers[provider.ID] = *provider
	return nil
}

type fakeAvailabilityRepo struct {
	blocks  []models.BlockedTime
	timeOff []models.TimeOffRequest
}

func (f *fakeAvailabilityRepo) GetBlockedByProviderAndDate(providerID, date string) ([]models.BlockedTime, error) {
	var out []models.BlockedTime
	for _, b := range f.blocks {
		if b.ProviderID == providerID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) CreateBlocked(block *models.BlockedTime) error {
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeAvailabilityRepo) DeleteBlocked(blockID string) error {
	for i, b := range f.blocks {
		if b.BlockID == blockID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("blocked interval with id %s not found", blockID)
}

func (f *fakeAvailabilityRepo) GetApprovedTimeOff(providerID, date string) ([]models.TimeOffRequest, error) {
	var out []models.TimeOffRequest
	for _, t := range f.timeOff {
		if t.ProviderID == providerID && t.Status == models.TimeOffApproved && t.CoversDate(date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListTimeOff(providerID string) ([]models.TimeOffRequest, error) {
	var out []models.TimeOffRequest
	for _, t := range f.timeOff {
		if t.ProviderID == providerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) CreateTimeOff(request *models.TimeOffRequest) error {
	f.timeOff = append(f.timeOff, *request)
	return nil
}

func (f *fakeAvailabilityRepo) SetTimeOffStatus(requestID, status string) error {
	for i := range f.timeOff {
		if f.timeOff[i].ID == requestID {
			f.timeOff[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("time-off request with id %s not found", requestID)
}

type fakeJobRepo struct {
	jobs []models.Job
}

func (f *fakeJobRepo) GetByID(jobID string) (*models.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			j := f.jobs[i]
			return &j, nil
		}
	}
	return nil, fmt.Errorf("job with id %s not found", jobID)
}

func (f *fakeJobRepo) GetSchedulable(providerID, date string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.ProviderID == providerID && j.Date == date && !j.IsTerminal() {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) GetByIDs(jobIDs []string) ([]models.Job, error) {
	var out []models.Job
	for _, id := range jobIDs {
		for _, j := range f.jobs {
			if j.ID == id {
				out = append(out, j)
			}
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Create(job *models.Job) error {
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) setAssigned(jobID string, workerIDs []string) bool {
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			f.jobs[i].AssignedUserIDs = workerIDs
			return true
		}
	}
	return false
}

type fakeProposalRepo struct {
	jobs        *fakeJobRepo
	proposals   map[string]*models.ScheduleProposal
	assignments map[string][]models.ProposedAssignment

	createErr error
	// failApproveOnJob simulates a persistence failure mid-approval; the
	// transaction aborts and no job may be updated.
	failApproveOnJob string
}

func newFakeProposalRepo(jobs *fakeJobRepo) *fakeProposalRepo {
	return &fakeProposalRepo{
		jobs:        jobs,
		proposals:   make(map[string]*models.ScheduleProposal),
		assignments: make(map[string][]models.ProposedAssignment),
	}
}

func (f *fakeProposalRepo) CreateWithAssignments(ctx context.Context, proposal *models.ScheduleProposal, assignments []models.ProposedAssignment, supersede bool) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, existing := range f.proposals {
		if existing.ProviderID == proposal.ProviderID && existing.Date == proposal.Date && existing.Status == models.ProposalPending {
			if !supersede {
				return fmt.Errorf("provider %s date %s: %w", proposal.ProviderID, proposal.Date, proposalRepo.ErrPendingExists)
			}
			existing.Status = models.ProposalRejected
			existing.SupersededBy = proposal.ID
		}
	}

	now := time.Now()
	proposal.Status = models.ProposalPending
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	stored := *proposal
	f.proposals[proposal.ID] = &stored

	rows := make([]models.ProposedAssignment, len(assignments))
	copy(rows, assignments)
	for i := range rows {
		rows[i].ProposalID = proposal.ID
	}
	f.assignments[proposal.ID] = rows
	return nil
}

func (f *fakeProposalRepo) GetByID(proposalID string) (*models.ScheduleProposal, error) {
	p, ok := f.proposals[proposalID]
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (f *fakeProposalRepo) GetAssignments(proposalID string) ([]models.ProposedAssignment, error) {
	rows := f.assignments[proposalID]
	out := make([]models.ProposedAssignment, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

// UpdateAssignments applies the batch all-or-nothing, the way the Mongo
// implementation's transaction does: the pending check and every row write
// either all land or none do.
func (f *fakeProposalRepo) UpdateAssignments(ctx context.Context, proposalID string, mods []models.ProposalModification) error {
	p, ok := f.proposals[proposalID]
	if !ok {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotFound)
	}
	if p.Status != models.ProposalPending {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotPending)
	}

	rows := f.assignments[proposalID]
	staged := make(map[string]int, len(mods))
	for _, m := range mods {
		found := false
		for i := range rows {
			if rows[i].JobID == m.JobID {
				staged[m.JobID] = i
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no proposed assignment for job %s in proposal %s", m.JobID, proposalID)
		}
	}

	now := time.Now()
	for _, m := range mods {
		i := staged[m.JobID]
		rows[i].WorkerIDs = m.WorkerIDs
		if len(m.WorkerIDs) > 0 {
			rows[i].Reason = ""
		}
		rows[i].UpdatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

func (f *fakeProposalRepo) Approve(ctx context.Context, proposalID string) error {
	p, ok := f.proposals[proposalID]
	if !ok {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotFound)
	}
	if p.Status != models.ProposalPending {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotPending)
	}

	// Stage the job writes first; only commit when every write succeeds.
	staged := make(map[string][]string)
	for _, row := range f.assignments[proposalID] {
		if row.JobID == f.failApproveOnJob {
			return errors.New("simulated persistence failure mid-approval")
		}
		staged[row.JobID] = row.WorkerIDs
	}
	for jobID, workerIDs := range staged {
		f.jobs.setAssigned(jobID, workerIDs)
	}
	p.Status = models.ProposalApproved
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProposalRepo) Reject(ctx context.Context, proposalID string) error {
	p, ok := f.proposals[proposalID]
	if !ok {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotFound)
	}
	if p.Status != models.ProposalPending {
		return fmt.Errorf("proposal %s: %w", proposalID, proposalRepo.ErrNotPending)
	}
	p.Status = models.ProposalRejected
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProposalRepo) ListPendingOlderThan(cutoff time.Time) ([]models.ScheduleProposal, error) {
	var out []models.ScheduleProposal
	for _, p := range f.proposals {
		if p.Status == models.ProposalPending && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProposalRepo) pendingFor(providerID, date string) *models.ScheduleProposal {
	for _, p := range f.proposals {
		if p.ProviderID == providerID && p.Date == date && p.Status == models.ProposalPending {
			out := *p
			return &out
		}
	}
	return nil
}
