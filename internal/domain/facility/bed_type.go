package facility

import (
	"time"

	"github.com/hms/backend/internal/domain/shared"
)

// BedType categorizes beds (general ward, ICU, private cabin, ...)
type BedType struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BedType) TableName() string {
	return "bed_types"
}

// NewBedType creates a new bed type
func NewBedType(name, description string) (*BedType, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bed type name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Bed type name cannot exceed 100 characters")
	}
	return &BedType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update changes the bed type's information
func (b *BedType) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Bed type name cannot be empty")
	}
	b.Name = name
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
