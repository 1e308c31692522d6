package services

import (
	"fmt"
	"time"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	"github.com/dhanashri-code/expense-tracker/internal/core/domain"
)

const dateOnlyLayout = "2006-01-02"

// ParseDateRange parses caller-supplied start/end date strings into an
// inclusive window. RFC3339 timestamps are taken verbatim; plain dates
// resolve to the start of day for the lower bound and the end of day for
// the upper bound so the named end date stays inside the window.
func ParseDateRange(start, end string) (*domain.DateRange, error) {
	startAt, err := parseDateParam(start, false)
	if err != nil {
		return nil, err
	}
	endAt, err := parseDateParam(end, true)
	if err != nil {
		return nil, err
	}
	if endAt.Before(startAt) {
		return nil, fmt.Errorf("%w: endDate %q precedes startDate %q", apperrors.ErrValidation, end, start)
	}
	return &domain.DateRange{Start: startAt, End: endAt}, nil
}

func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}
