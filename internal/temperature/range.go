package temperature

// Axis defaults for an empty list: a plausible body-temperature band.
const (
	DefaultRangeMin = 34.0
	DefaultRangeMax = 41.0
)

const (
	seedMin  = 40.0
	seedMax  = 30.0
	rangePad = 0.5
)

// Range returns the padded vertical axis bounds for entries.
//
// The running min starts at 40 and the running max at 30, so a list whose
// values all lie above 40 keeps 40 as its minimum (and below 30, 30 as its
// maximum).
func Range(entries []Entry) (lo, hi float64) {
	if len(entries) == 0 {
		return DefaultRangeMin, DefaultRangeMax
	}

	lo, hi = seedMin, seedMax
	for _, e := range entries {
		if e.Temperature < lo {
			lo = e.Temperature
		}
		if e.Temperature > hi {
			hi = e.Temperature
		}
	}
	return lo - rangePad, hi + rangePad
}
