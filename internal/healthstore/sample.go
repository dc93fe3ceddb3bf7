package healthstore

import (
	"time"

	"github.com/google/uuid"
)

// Object is anything a sample query can return.
type Object interface {
	UUID() uuid.UUID
	SampleType() SampleType
	StartDate() time.Time
	EndDate() time.Time
}

// QuantitySample is a measurement with a scalar quantity over an interval.
type QuantitySample struct {
	ID       uuid.UUID
	Type     SampleType
	Quantity Quantity
	Start    time.Time
	End      time.Time
}

func (s QuantitySample) UUID() uuid.UUID        { return s.ID }
func (s QuantitySample) SampleType() SampleType { return s.Type }
func (s QuantitySample) StartDate() time.Time   { return s.Start }
func (s QuantitySample) EndDate() time.Time     { return s.End }

// CategorySample is an enumerated observation over an interval, e.g. a
// sleep stage.
type CategorySample struct {
	ID    uuid.UUID
	Type  SampleType
	Value int
	Start time.Time
	End   time.Time
}

func (s CategorySample) UUID() uuid.UUID        { return s.ID }
func (s CategorySample) SampleType() SampleType { return s.Type }
func (s CategorySample) StartDate() time.Time   { return s.Start }
func (s CategorySample) EndDate() time.Time     { return s.End }
