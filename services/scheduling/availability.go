package scheduling

import (
	"fmt"
	"sort"

	"fieldops/models"
)

// resolveWorkers computes the eligible pool for a provider/date alongside the
// full active roster. Eligibility removes workers with approved time-off
// spanning the date, workers covered by a blocked interval on the date, and
// workers the caller excluded outright. The eligible set is sorted by worker
// id ascending so identical inputs always yield the same ordering.
func (s *DefaultSchedulingService) resolveWorkers(providerID, date string, excludeWorkerIDs []string) (roster, eligible []models.Worker, err error) {
	roster, err = s.Workers.GetByProvider(providerID, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load workers for provider %s: %w", providerID, err)
	}

	timeOff, err := s.Availability.GetApprovedTimeOff(providerID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load time-off for provider %s: %w", providerID, err)
	}
	blocks, err := s.Availability.GetBlockedByProviderAndDate(providerID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load blocked intervals for provider %s: %w", providerID, err)
	}

	onLeave := make(map[string]bool, len(timeOff))
	for _, t := range timeOff {
		if t.Status == models.TimeOffApproved && t.CoversDate(date) {
			onLeave[t.WorkerID] = true
		}
	}
	excluded := make(map[string]bool, len(excludeWorkerIDs))
	for _, id := range excludeWorkerIDs {
		excluded[id] = true
	}

	for _, w := range roster {
		if onLeave[w.ID] || excluded[w.ID] {
			continue
		}
		blocked := false
		for _, b := range blocks {
			if b.Covers(w.ID) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		eligible = append(eligible, w)
	}

	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return roster, eligible, nil
}

// ResolveAvailability returns the eligible worker ids for a provider/date.
// Zero eligible workers is an empty set, not an error.
func (s *DefaultSchedulingService) ResolveAvailability(providerID, date string, excludeWorkerIDs []string) ([]string, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	_, eligible, err := s.resolveWorkers(providerID, normalized, excludeWorkerIDs)
	if err != nil {
		return nil, newPersistenceError("availability lookup failed", err)
	}
	ids := make([]string, 0, len(eligible))
	for _, w := range eligible {
		ids = append(ids, w.ID)
	}
	return ids, nil
}
