// Package temperature holds the normalized wrist-temperature entry, the
// mapping from health-store samples, and the chart axis range.
package temperature

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/luki/wristtemp/internal/healthstore"
)

// Threshold splits chart points into the cool and warm colour bands.
const Threshold = 36.0

// ErrUnexpectedSample is returned when a query result holds something that
// is not a temperature quantity sample.
var ErrUnexpectedSample = errors.New("unexpected sample")

// Entry is one sleeping wrist temperature measurement.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Warm reports whether the entry is at or above Threshold.
func (e Entry) Warm() bool {
	return e.Temperature >= Threshold
}

// FromSamples maps query results to entries one to one, in the order given.
// Nothing is returned unless every object converts.
func FromSamples(objects []healthstore.Object) ([]Entry, error) {
	samples := make([]healthstore.QuantitySample, 0, len(objects))
	for i, o := range objects {
		qs, ok := o.(healthstore.QuantitySample)
		if !ok {
			return nil, fmt.Errorf("%w: object %d is %T", ErrUnexpectedSample, i, o)
		}
		samples = append(samples, qs)
	}

	celsius := make([]float64, len(samples))
	for i, s := range samples {
		v, err := s.Quantity.DoubleValue(healthstore.DegreeCelsius)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %s: %w", ErrUnexpectedSample, s.ID, err)
		}
		celsius[i] = v
	}

	return lo.Map(samples, func(s healthstore.QuantitySample, i int) Entry {
		return Entry{
			ID:          s.ID,
			Temperature: celsius[i],
			StartDate:   s.Start,
			EndDate:     s.End,
		}
	}), nil
}

// NewestFirst returns a copy of entries sorted by start date, latest first.
func NewestFirst(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

// OldestFirst returns a copy of entries in chronological order, the order
// the chart plots them in.
func OldestFirst(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// Average returns the mean temperature, or 0 for no entries.
func Average(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	return lo.SumBy(entries, func(e Entry) float64 { return e.Temperature }) / float64(len(entries))
}
