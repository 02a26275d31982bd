package pharmacy

import (
	"time"

	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MedicineStatus is used by list screens for status filtering
type MedicineStatus string

const (
	MedicineStatusAvailable  MedicineStatus = "available"
	MedicineStatusOutOfStock MedicineStatus = "out_of_stock"
)

// Medicine is one item in the pharmacy inventory
type Medicine struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Brand        string          `gorm:"type:varchar(200)"`
	Category     string          `gorm:"type:varchar(100);index"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQty     int64           `gorm:"not null;default:0"`
	ExpiryDate   *time.Time      `gorm:"index"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Medicine) TableName() string {
	return "medicines"
}

// NewMedicine adds a medicine to the inventory
func NewMedicine(name, brand, category string, sellingPrice decimal.Decimal) (*Medicine, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Medicine name cannot be empty")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	return &Medicine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             brand,
		Category:          category,
		SellingPrice:      sellingPrice,
	}, nil
}

// Status maps stock level onto the list-screen status values
func (m *Medicine) Status() MedicineStatus {
	if m.StockQty > 0 {
		return MedicineStatusAvailable
	}
	return MedicineStatusOutOfStock
}

// Update changes the medicine's editable fields
func (m *Medicine) Update(name, brand, category string, sellingPrice decimal.Decimal, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Medicine name cannot be empty")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	m.Name = name
	m.Brand = brand
	m.Category = category
	m.SellingPrice = sellingPrice
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetExpiry records the expiry date
func (m *Medicine) SetExpiry(expiry *time.Time) {
	m.ExpiryDate = expiry
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// AddStock increases stock, e.g. when a purchase is received
func (m *Medicine) AddStock(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity must be positive")
	}
	m.StockQty += qty
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// RemoveStock decreases stock, e.g. when dispensing a prescription
func (m *Medicine) RemoveStock(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity must be positive")
	}
	if qty > m.StockQty {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock available")
	}
	m.StockQty -= qty
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}
