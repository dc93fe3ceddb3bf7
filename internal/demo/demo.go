// Package demo generates plausible sleeping wrist temperature nights for
// filling an empty store.
package demo

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/luki/wristtemp/internal/healthstore"
)

const (
	baseline  = 36.1 // °C
	cycleDays = 28.0
)

// Nights returns one sample of type st per night for the n nights ending
// the night before end, oldest first. Values follow a monthly cycle with
// noise.
func Nights(st healthstore.SampleType, n int, end time.Time, rng *rand.Rand) []healthstore.Object {
	if n <= 0 {
		return nil
	}
	lastNight := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, -1)

	out := make([]healthstore.Object, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := lastNight.AddDate(0, 0, -i)
		bedtime := day.Add(21*time.Hour + time.Duration(rng.IntN(120))*time.Minute)
		sleep := 6*time.Hour + time.Duration(rng.IntN(150))*time.Minute

		phase := float64(day.YearDay()) / cycleDays * 2 * math.Pi
		value := baseline + 0.3*math.Sin(phase) + rng.NormFloat64()*0.15

		out = append(out, healthstore.QuantitySample{
			ID:       uuid.New(),
			Type:     st,
			Quantity: healthstore.Quantity{Value: math.Round(value*100) / 100, Unit: healthstore.DegreeCelsius},
			Start:    bedtime,
			End:      bedtime.Add(sleep),
		})
	}
	return out
}
