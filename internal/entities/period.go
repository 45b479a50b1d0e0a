package entities

import (
	"time"

	apperrors "rentacar/internal/errors"
)

// Period is a half-open date range [Start, End): Start is included, End is
// excluded. Two bookings may share an endpoint, one ending the day the other
// begins, without conflicting.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a Period normalized to date granularity (midnight UTC).
// Returns ErrInvalidPeriod unless start < end.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: DateOnly(start), End: DateOnly(end)}
	if !p.Start.Before(p.End) {
		return Period{}, apperrors.ErrInvalidPeriod
	}
	return p, nil
}

// Overlaps reports whether two half-open ranges intersect:
// p.Start < other.End AND p.End > other.Start.
// The whole availability guarantee rests on this predicate; the SQL in the
// booking repository applies the same condition server-side.
func (p Period) Overlaps(other Period) bool {
	return p.Start.Before(other.End) && p.End.After(other.Start)
}

// Days returns the number of rental days covered by the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// DateOnly truncates a timestamp to its date at midnight UTC. Bookings are
// tracked at day granularity, matching pick-up/return dates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
