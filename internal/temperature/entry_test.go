package temperature

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/wristtemp/internal/healthstore"
)

func wristSample(v float64, unit healthstore.Unit, start time.Time) healthstore.QuantitySample {
	return healthstore.QuantitySample{
		ID:       uuid.New(),
		Type:     healthstore.SleepingWristTemperature,
		Quantity: healthstore.Quantity{Value: v, Unit: unit},
		Start:    start,
		End:      start.Add(6*time.Hour + 30*time.Minute),
	}
}

func TestFromSamples(t *testing.T) {
	base := time.Date(2026, 2, 21, 23, 10, 0, 0, time.UTC)
	samples := []healthstore.QuantitySample{
		wristSample(36.1, healthstore.DegreeCelsius, base.Add(24*time.Hour)),
		wristSample(35.8, healthstore.DegreeCelsius, base),
		wristSample(97.7, healthstore.DegreeFahrenheit, base.Add(48*time.Hour)),
	}
	objects := make([]healthstore.Object, len(samples))
	for i, s := range samples {
		objects[i] = s
	}

	entries, err := FromSamples(objects)
	require.NoError(t, err)
	require.Len(t, entries, len(samples))

	for i, s := range samples {
		assert.Equal(t, s.ID, entries[i].ID)
		assert.Equal(t, s.Start, entries[i].StartDate)
		assert.Equal(t, s.End, entries[i].EndDate)
	}
	assert.Equal(t, 36.1, entries[0].Temperature)
	assert.Equal(t, 35.8, entries[1].Temperature)
	assert.InDelta(t, 36.5, entries[2].Temperature, 1e-9)
}

func TestFromSamplesRejectsOtherKinds(t *testing.T) {
	sleep, err := healthstore.LookupType(healthstore.SleepAnalysisID)
	require.NoError(t, err)

	objects := []healthstore.Object{
		wristSample(36.0, healthstore.DegreeCelsius, time.Now()),
		healthstore.CategorySample{ID: uuid.New(), Type: sleep, Value: 1},
	}
	entries, err := FromSamples(objects)
	assert.ErrorIs(t, err, ErrUnexpectedSample)
	assert.Nil(t, entries)

	bad := wristSample(3, healthstore.Count, time.Now())
	_, err = FromSamples([]healthstore.Object{bad})
	assert.ErrorIs(t, err, ErrUnexpectedSample)
	assert.ErrorIs(t, err, healthstore.ErrIncompatibleUnit)
}

func TestFromSamplesEmpty(t *testing.T) {
	entries, err := FromSamples(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewestFirst(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)

	in := []Entry{{StartDate: t2}, {StartDate: t1}, {StartDate: t3}}
	got := NewestFirst(in)

	require.Len(t, got, 3)
	assert.Equal(t, t3, got[0].StartDate)
	assert.Equal(t, t2, got[1].StartDate)
	assert.Equal(t, t1, got[2].StartDate)
	assert.Equal(t, t2, in[0].StartDate, "input must not be reordered")

	asc := OldestFirst(in)
	assert.Equal(t, t1, asc[0].StartDate)
	assert.Equal(t, t3, asc[2].StartDate)
}

func TestAverageAndWarm(t *testing.T) {
	assert.Zero(t, Average(nil))
	assert.InDelta(t, 36.0, Average(entriesOf(35.5, 36.5)), 1e-9)

	assert.True(t, Entry{Temperature: 36.0}.Warm())
	assert.False(t, Entry{Temperature: 35.99}.Warm())
}
