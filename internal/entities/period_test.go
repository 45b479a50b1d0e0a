package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rentacar/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod(date(2025, 6, 1), date(2025, 6, 5))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 1), p.Start)
	assert.Equal(t, date(2025, 6, 5), p.End)
	assert.Equal(t, 4, p.Days())

	_, err = NewPeriod(date(2025, 6, 5), date(2025, 6, 5))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)

	_, err = NewPeriod(date(2025, 6, 6), date(2025, 6, 5))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestNewPeriodNormalizesToDate(t *testing.T) {
	start := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 1), p.Start)
	assert.Equal(t, date(2025, 6, 5), p.End)
}

func TestOverlaps(t *testing.T) {
	booked := Period{Start: date(2025, 6, 1), End: date(2025, 6, 5)}

	tests := []struct {
		name     string
		other    Period
		overlaps bool
	}{
		{"disjoint after", Period{date(2025, 6, 10), date(2025, 6, 12)}, false},
		{"disjoint before", Period{date(2025, 5, 1), date(2025, 5, 3)}, false},
		// Touching endpoints are compatible: one rental ends the day the
		// next begins.
		{"adjacent after", Period{date(2025, 6, 5), date(2025, 6, 10)}, false},
		{"adjacent before", Period{date(2025, 5, 28), date(2025, 6, 1)}, false},
		{"one day overlap at end", Period{date(2025, 6, 4), date(2025, 6, 6)}, true},
		{"one day overlap at start", Period{date(2025, 5, 30), date(2025, 6, 2)}, true},
		{"contained", Period{date(2025, 6, 2), date(2025, 6, 4)}, true},
		{"covering", Period{date(2025, 5, 30), date(2025, 6, 8)}, true},
		{"identical", Period{date(2025, 6, 1), date(2025, 6, 5)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.other.Overlaps(booked))
			// The predicate is symmetric.
			assert.Equal(t, tc.overlaps, booked.Overlaps(tc.other))
		})
	}
}
