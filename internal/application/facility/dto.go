package facility

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/listing"
	"github.com/shopspring/decimal"
)

// CreateBedTypeRequest represents a request to create a bed type
type CreateBedTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateBedTypeRequest represents a request to update a bed type
type UpdateBedTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// BedTypeResponse represents a bed type in API responses
type BedTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToBedTypeResponse converts a bed type to its API representation
func ToBedTypeResponse(bt *facility.BedType) BedTypeResponse {
	return BedTypeResponse{
		ID:          bt.ID,
		Name:        bt.Name,
		Description: bt.Description,
		CreatedAt:   bt.CreatedAt,
		UpdatedAt:   bt.UpdatedAt,
	}
}

// BedTypeSource feeds bed types to the listing controller
func BedTypeSource() listing.Source[facility.BedType] {
	return listing.Source[facility.BedType]{
		SearchFields: func(bt facility.BedType) []string {
			return []string{bt.Name, bt.Description}
		},
		Timestamp: func(bt facility.BedType) time.Time { return bt.CreatedAt },
	}
}

// CreateBedRequest represents a request to create a bed
type CreateBedRequest struct {
	Number       string          `json:"number" binding:"required,min=1,max=50"`
	BedTypeID    uuid.UUID       `json:"bed_type_id" binding:"required"`
	ChargePerDay decimal.Decimal `json:"charge_per_day"`
	Description  string          `json:"description" binding:"max=1000"`
}

// UpdateBedRequest represents a request to update a bed
type UpdateBedRequest struct {
	Number       string          `json:"number" binding:"required,min=1,max=50"`
	BedTypeID    uuid.UUID       `json:"bed_type_id" binding:"required"`
	ChargePerDay decimal.Decimal `json:"charge_per_day"`
	Description  string          `json:"description" binding:"max=1000"`
}

// BedResponse represents a bed in API responses
type BedResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	BedTypeID    uuid.UUID       `json:"bed_type_id"`
	BedTypeName  string          `json:"bed_type_name,omitempty"`
	ChargePerDay decimal.Decimal `json:"charge_per_day"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToBedResponse converts a bed to its API representation. The bed type name
// comes from the lookup cache and may be empty when unresolved.
func ToBedResponse(b *facility.Bed, bedTypeName string) BedResponse {
	return BedResponse{
		ID:           b.ID,
		Number:       b.Number,
		BedTypeID:    b.BedTypeID,
		BedTypeName:  bedTypeName,
		ChargePerDay: b.ChargePerDay,
		Description:  b.Description,
		Status:       string(b.Status()),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BedSource feeds beds to the listing controller
func BedSource() listing.Source[facility.Bed] {
	return listing.Source[facility.Bed]{
		SearchFields: func(b facility.Bed) []string {
			return []string{b.Number, b.Description}
		},
		Timestamp: func(b facility.Bed) time.Time { return b.CreatedAt },
		Status:    func(b facility.Bed) string { return string(b.Status()) },
	}
}
