package scheduling

import (
	"sort"

	"fieldops/models"
)

// workerState tracks one eligible worker's tentative load during a run.
type workerState struct {
	worker models.Worker
	load   int
	held   []models.Job
}

// conflicted reports whether placing the job would exceed the worker's
// same-slot capacity given the jobs already held this run.
func (st *workerState) conflicted(job models.Job, slotCapacity int) bool {
	overlapping := 0
	for _, held := range st.held {
		if held.Overlaps(job) {
			overlapping++
		}
	}
	return overlapping >= slotCapacity
}

// BuildAssignmentPlan is the core matcher: a single greedy pass over jobs in
// workload order. Per job the candidates are eligible workers that skill-match
// the service type and do not conflict under the provider's same-slot
// capacity; among them it picks the workers with the fewest assignments so
// far, then by worker id ascending, so identical inputs produce identical
// plans. A job with no candidate is recorded as unsatisfied rather than
// aborting the run.
//
// This is intentionally a deterministic greedy heuristic, not a bipartite
// matching solver; the trade favors explainability and speed.
func BuildAssignmentPlan(
	jobs []models.Job,
	eligible []models.Worker,
	roster []models.Worker,
	slotCapacity int,
) ([]models.JobAssignment, []models.UnsatisfiedJob) {
	if slotCapacity < 1 {
		slotCapacity = 1
	}

	states := make([]*workerState, 0, len(eligible))
	for _, w := range eligible {
		states = append(states, &workerState{worker: w})
	}

	assignments := make([]models.JobAssignment, 0, len(jobs))
	unsatisfied := make([]models.UnsatisfiedJob, 0)

	for _, job := range jobs {
		var skillMatched, free []*workerState
		for _, st := range states {
			if !st.worker.HasSkill(job.ServiceType) {
				continue
			}
			skillMatched = append(skillMatched, st)
			if st.conflicted(job, slotCapacity) {
				continue
			}
			free = append(free, st)
		}

		if len(free) == 0 {
			unsatisfied = append(unsatisfied, models.UnsatisfiedJob{
				JobID:  job.ID,
				Reason: unsatisfiedReason(job, skillMatched, states, roster),
			})
			continue
		}

		// Load-balancing tie-break, then worker id for determinism.
		sort.Slice(free, func(i, j int) bool {
			if free[i].load != free[j].load {
				return free[i].load < free[j].load
			}
			return free[i].worker.ID < free[j].worker.ID
		})

		take := job.WorkersNeeded()
		if take > len(free) {
			take = len(free)
		}
		workerIDs := make([]string, 0, take)
		for _, st := range free[:take] {
			st.load++
			st.held = append(st.held, job)
			workerIDs = append(workerIDs, st.worker.ID)
		}
		assignments = append(assignments, models.JobAssignment{JobID: job.ID, WorkerIDs: workerIDs})
	}

	return assignments, unsatisfied
}

// unsatisfiedReason classifies why a job found no worker. A skill held only by
// unavailable roster workers reads as no_available_worker, not no_skill_match:
// the gap is availability, not capability.
func unsatisfiedReason(job models.Job, skillMatched, states []*workerState, roster []models.Worker) string {
	if len(skillMatched) > 0 {
		return models.ReasonAllConflicted
	}
	if len(states) == 0 {
		return models.ReasonNoAvailableWorker
	}
	for _, w := range roster {
		if w.HasSkill(job.ServiceType) {
			return models.ReasonNoAvailableWorker
		}
	}
	return models.ReasonNoSkillMatch
}
