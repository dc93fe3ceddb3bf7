package demo

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/wristtemp/internal/healthstore"
)

func TestNights(t *testing.T) {
	end := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	objs := Nights(healthstore.SleepingWristTemperature, 30, end, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, objs, 30)

	for i, o := range objs {
		s, ok := o.(healthstore.QuantitySample)
		require.True(t, ok)
		assert.Equal(t, healthstore.SleepingWristTemperature, s.Type)
		assert.True(t, s.Start.Before(s.End))
		assert.True(t, s.Start.Before(end))
		assert.InDelta(t, 36.1, s.Quantity.Value, 1.5)
		if i > 0 {
			assert.True(t, objs[i-1].StartDate().Before(s.Start), "oldest first")
		}
	}
	assert.Equal(t, 14, objs[len(objs)-1].StartDate().Day(), "last sample is the night before end")
}

func TestNightsEmpty(t *testing.T) {
	assert.Nil(t, Nights(healthstore.SleepingWristTemperature, 0, time.Now(), rand.New(rand.NewPCG(1, 2))))
}

func TestNightsUsesSampleType(t *testing.T) {
	body, err := healthstore.QuantityType(healthstore.BodyTemperatureID)
	require.NoError(t, err)

	objs := Nights(body, 5, time.Now(), rand.New(rand.NewPCG(3, 4)))
	require.Len(t, objs, 5)
	for _, o := range objs {
		assert.Equal(t, body, o.SampleType())
	}
}
