package scheduling

import (
	"fmt"
	"sort"

	"fieldops/models"
)

// buildWorkload loads the jobs needing assignment for the date. When the
// caller supplies explicit job ids only those jobs are considered, minus
// cancelled/completed ones and ones belonging to another provider; otherwise
// all of the provider's non-terminal jobs scheduled on the date. Output is
// ordered ascending by start time, tie-break job id, so time-sensitive jobs
// are processed first.
func (s *DefaultSchedulingService) buildWorkload(providerID, date string, jobIDs []string) ([]models.Job, error) {
	var jobs []models.Job

	if len(jobIDs) > 0 {
		fetched, err := s.Jobs.GetByIDs(jobIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load jobs by id: %w", err)
		}
		for _, j := range fetched {
			if j.ProviderID != providerID || j.IsTerminal() {
				continue
			}
			jobs = append(jobs, j)
		}
	} else {
		fetched, err := s.Jobs.GetSchedulable(providerID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedulable jobs: %w", err)
		}
		jobs = fetched
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Start != jobs[j].Start {
			return jobs[i].Start < jobs[j].Start
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs, nil
}
