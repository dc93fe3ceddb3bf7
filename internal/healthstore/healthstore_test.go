package healthstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityDoubleValue(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		unit Unit
		want float64
	}{
		{"same unit", Quantity{Value: 36.4, Unit: DegreeCelsius}, DegreeCelsius, 36.4},
		{"fahrenheit to celsius", Quantity{Value: 98.6, Unit: DegreeFahrenheit}, DegreeCelsius, 37.0},
		{"celsius to fahrenheit", Quantity{Value: 100, Unit: DegreeCelsius}, DegreeFahrenheit, 212},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.DoubleValue(tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := Quantity{Value: 3, Unit: Count}.DoubleValue(DegreeCelsius)
	assert.ErrorIs(t, err, ErrIncompatibleUnit)
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("°F")
	require.NoError(t, err)
	assert.Equal(t, DegreeFahrenheit, u)

	_, err = ParseUnit("kelvin")
	assert.ErrorIs(t, err, ErrIncompatibleUnit)
}

func TestQuantityType(t *testing.T) {
	st, err := QuantityType(SleepingWristTemperatureID)
	require.NoError(t, err)
	assert.Equal(t, SleepingWristTemperature, st)

	_, err = QuantityType("HKQuantityTypeIdentifierMadeUp")
	assert.ErrorIs(t, err, ErrUnknownSampleType)

	_, err = QuantityType(SleepAnalysisID)
	assert.ErrorIs(t, err, ErrUnknownSampleType, "category types are not quantity types")
}

func sampleAt(st SampleType, start time.Time) QuantitySample {
	return QuantitySample{
		ID:       uuid.New(),
		Type:     st,
		Quantity: Quantity{Value: 36, Unit: DegreeCelsius},
		Start:    start,
		End:      start.Add(7 * time.Hour),
	}
}

func TestQueryApply(t *testing.T) {
	base := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	body, _ := LookupType(BodyTemperatureID)

	objects := []Object{
		sampleAt(SleepingWristTemperature, base.Add(48*time.Hour)),
		sampleAt(body, base),
		sampleAt(SleepingWristTemperature, base),
		sampleAt(SleepingWristTemperature, base.Add(24*time.Hour)),
	}

	t.Run("unfiltered keeps store order", func(t *testing.T) {
		got := Query{Type: SleepingWristTemperature, Limit: NoLimit}.Apply(objects)
		require.Len(t, got, 3)
		assert.Equal(t, objects[0], got[0])
		assert.Equal(t, objects[2], got[1])
		assert.Equal(t, objects[3], got[2])
	})

	t.Run("sorted and limited", func(t *testing.T) {
		got := Query{
			Type:  SleepingWristTemperature,
			Limit: 2,
			Sort:  []SortDescriptor{{Key: SortByStartDate, Ascending: true}},
		}.Apply(objects)
		require.Len(t, got, 2)
		assert.Equal(t, base, got[0].StartDate())
		assert.Equal(t, base.Add(24*time.Hour), got[1].StartDate())
	})

	t.Run("predicate window", func(t *testing.T) {
		got := Query{
			Type:      SleepingWristTemperature,
			Predicate: &Predicate{From: base.Add(time.Hour), To: base.Add(30 * time.Hour)},
		}.Apply(objects)
		require.Len(t, got, 1)
		assert.Equal(t, base.Add(24*time.Hour), got[0].StartDate())
	})
}
