package sqlstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/luki/wristtemp/internal/healthstore"
)

// SampleModel is a row of the samples table.
type SampleModel struct {
	ID        uint      `gorm:"primaryKey"`
	UUID      string    `gorm:"uniqueIndex;size:36;not null"`
	TypeID    string    `gorm:"size:128;not null;index:idx_samples_type_start"`
	Kind      string    `gorm:"size:16;not null"`
	Value     float64   `gorm:"not null"`
	Unit      string    `gorm:"size:16"`
	StartDate time.Time `gorm:"not null;index:idx_samples_type_start"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (SampleModel) TableName() string { return "samples" }

// AuthorizationModel records the read grant for one sample type.
type AuthorizationModel struct {
	TypeID    string `gorm:"primaryKey;size:128"`
	Status    string `gorm:"size:16;not null"`
	UpdatedAt time.Time
}

func (AuthorizationModel) TableName() string { return "authorizations" }

// Authorization statuses.
const (
	StatusGranted = "granted"
	StatusDenied  = "denied"
)

func toModel(o healthstore.Object) (SampleModel, bool) {
	m := SampleModel{
		UUID:      o.UUID().String(),
		TypeID:    o.SampleType().ID,
		StartDate: o.StartDate().UTC(),
		EndDate:   o.EndDate().UTC(),
	}
	switch s := o.(type) {
	case healthstore.QuantitySample:
		m.Kind = string(healthstore.KindQuantity)
		m.Value = s.Quantity.Value
		m.Unit = string(s.Quantity.Unit)
	case healthstore.CategorySample:
		m.Kind = string(healthstore.KindCategory)
		m.Value = float64(s.Value)
	default:
		return SampleModel{}, false
	}
	return m, true
}

func (m SampleModel) toObject() (healthstore.Object, error) {
	id, err := uuid.Parse(m.UUID)
	if err != nil {
		return nil, err
	}
	st, err := healthstore.LookupType(m.TypeID)
	if err != nil {
		return nil, err
	}
	if healthstore.Kind(m.Kind) == healthstore.KindCategory {
		return healthstore.CategorySample{
			ID:    id,
			Type:  st,
			Value: int(m.Value),
			Start: m.StartDate,
			End:   m.EndDate,
		}, nil
	}
	unit, err := healthstore.ParseUnit(m.Unit)
	if err != nil {
		return nil, err
	}
	return healthstore.QuantitySample{
		ID:       id,
		Type:     st,
		Quantity: healthstore.Quantity{Value: m.Value, Unit: unit},
		Start:    m.StartDate,
		End:      m.EndDate,
	}, nil
}
