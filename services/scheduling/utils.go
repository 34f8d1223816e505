package scheduling

import (
	"fmt"
	"time"

	"fieldops/models"
)

// dateLayout is the ISO calendar date format used everywhere in scheduling.
const dateLayout = "2006-01-02"

// normalizeDate accepts an ISO calendar date or a full timestamp and returns
// the calendar date; time-of-day is ignored for date selection.
func normalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("date is required")
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q, expected an ISO calendar date", raw)
}

func validateGenerateRequest(req models.GenerateScheduleRequest) error {
	if req.ProviderID == "" {
		return fmt.Errorf("providerId is required")
	}
	if req.Date == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}
