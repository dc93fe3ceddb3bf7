package healthstore

import (
	"errors"
	"fmt"
)

// Unit is a unit of measure for a Quantity.
type Unit string

const (
	DegreeCelsius    Unit = "degC"
	DegreeFahrenheit Unit = "degF"
	Count            Unit = "count"
)

// ErrIncompatibleUnit is returned when a quantity cannot be expressed in the
// requested unit.
var ErrIncompatibleUnit = errors.New("incompatible unit")

// ParseUnit accepts the short unit names used in storage.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "degC", "°C", "C":
		return DegreeCelsius, nil
	case "degF", "°F", "F":
		return DegreeFahrenheit, nil
	case "count":
		return Count, nil
	}
	return "", fmt.Errorf("%w: %q", ErrIncompatibleUnit, s)
}

func (u Unit) isTemperature() bool {
	return u == DegreeCelsius || u == DegreeFahrenheit
}

// Quantity is a scalar value with a unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// DoubleValue returns the quantity expressed in unit.
func (q Quantity) DoubleValue(unit Unit) (float64, error) {
	if q.Unit == unit {
		return q.Value, nil
	}
	if !q.Unit.isTemperature() || !unit.isTemperature() {
		return 0, fmt.Errorf("%w: %s to %s", ErrIncompatibleUnit, q.Unit, unit)
	}
	if unit == DegreeCelsius {
		return (q.Value - 32) * 5 / 9, nil
	}
	return q.Value*9/5 + 32, nil
}
