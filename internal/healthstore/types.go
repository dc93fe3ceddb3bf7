package healthstore

import "fmt"

// Kind distinguishes quantity samples from category samples.
type Kind string

const (
	KindQuantity Kind = "quantity"
	KindCategory Kind = "category"
)

// SampleType identifies a category of health measurement.
type SampleType struct {
	ID   string
	Kind Kind
}

func (t SampleType) String() string { return t.ID }

// Identifiers for the sample types known to this store.
const (
	SleepingWristTemperatureID = "HKQuantityTypeIdentifierAppleSleepingWristTemperature"
	BodyTemperatureID          = "HKQuantityTypeIdentifierBodyTemperature"
	SleepAnalysisID            = "HKCategoryTypeIdentifierSleepAnalysis"
)

// SleepingWristTemperature is the only type this application queries.
var SleepingWristTemperature = SampleType{ID: SleepingWristTemperatureID, Kind: KindQuantity}

var registry = map[string]SampleType{
	SleepingWristTemperatureID: SleepingWristTemperature,
	BodyTemperatureID:          {ID: BodyTemperatureID, Kind: KindQuantity},
	SleepAnalysisID:            {ID: SleepAnalysisID, Kind: KindCategory},
}

// LookupType returns the registered sample type for id.
func LookupType(id string) (SampleType, error) {
	t, ok := registry[id]
	if !ok {
		return SampleType{}, fmt.Errorf("%w: %q", ErrUnknownSampleType, id)
	}
	return t, nil
}

// QuantityType returns the registered quantity type for id. Category types
// are rejected the same way as unknown identifiers.
func QuantityType(id string) (SampleType, error) {
	t, err := LookupType(id)
	if err != nil {
		return SampleType{}, err
	}
	if t.Kind != KindQuantity {
		return SampleType{}, fmt.Errorf("%w: %q is not a quantity type", ErrUnknownSampleType, id)
	}
	return t, nil
}
