package facility

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BedStatus is used by list screens for status filtering
type BedStatus string

const (
	BedStatusAvailable BedStatus = "available"
	BedStatusOccupied  BedStatus = "occupied"
)

// Bed is one physical bed, categorized by a bed type and carrying the
// per-day charge billed for admissions
type Bed struct {
	shared.BaseAggregateRoot
	Number       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BedTypeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChargePerDay decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description  string          `gorm:"type:text"`
	Available    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Bed) TableName() string {
	return "beds"
}

// NewBed creates a new available bed
func NewBed(number string, bedTypeID uuid.UUID, chargePerDay decimal.Decimal) (*Bed, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Bed number cannot be empty")
	}
	if bedTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BED_TYPE", "Bed type ID cannot be empty")
	}
	if chargePerDay.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Charge per day cannot be negative")
	}
	return &Bed{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		BedTypeID:         bedTypeID,
		ChargePerDay:      chargePerDay,
		Available:         true,
	}, nil
}

// Status maps the availability flag onto the list-screen status values
func (b *Bed) Status() BedStatus {
	if b.Available {
		return BedStatusAvailable
	}
	return BedStatusOccupied
}

// Update changes the bed's editable fields
func (b *Bed) Update(number string, bedTypeID uuid.UUID, chargePerDay decimal.Decimal, description string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Bed number cannot be empty")
	}
	if bedTypeID == uuid.Nil {
		return shared.NewDomainError("INVALID_BED_TYPE", "Bed type ID cannot be empty")
	}
	if chargePerDay.IsNegative() {
		return shared.NewDomainError("INVALID_CHARGE", "Charge per day cannot be negative")
	}
	b.Number = number
	b.BedTypeID = bedTypeID
	b.ChargePerDay = chargePerDay
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Occupy marks the bed as taken by an admission
func (b *Bed) Occupy() error {
	if !b.Available {
		return shared.NewDomainError("BED_OCCUPIED", "Bed is already occupied")
	}
	b.Available = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Release marks the bed as available again
func (b *Bed) Release() {
	b.Available = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
