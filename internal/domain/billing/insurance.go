package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InsuranceStatus represents the status of an insurance plan
type InsuranceStatus string

const (
	InsuranceStatusActive   InsuranceStatus = "active"
	InsuranceStatusInactive InsuranceStatus = "inactive"
)

// InsuranceItem is one covered service line within an insurance plan
type InsuranceItem struct {
	shared.BaseEntity
	InsuranceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity    int64           `gorm:"not null;default:1"`
	TaxPercent  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InsuranceItem) TableName() string {
	return "insurance_items"
}

// LineInput returns the editable inputs of this item
func (i *InsuranceItem) LineInput() LineInput {
	return LineInput{UnitPrice: i.UnitPrice, Quantity: i.Quantity, TaxPercent: i.TaxPercent}
}

func newInsuranceItem(insuranceID uuid.UUID, serviceName string, input LineInput) (*InsuranceItem, error) {
	if serviceName == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	totals, err := ComputeLine(input.UnitPrice, input.Quantity, input.TaxPercent)
	if err != nil {
		return nil, err
	}
	return &InsuranceItem{
		BaseEntity:  shared.NewBaseEntity(),
		InsuranceID: insuranceID,
		ServiceName: serviceName,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		TaxPercent:  input.TaxPercent,
		Amount:      totals.Amount,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
	}, nil
}

func (i *InsuranceItem) update(input LineInput) error {
	totals, err := ComputeLine(input.UnitPrice, input.Quantity, input.TaxPercent)
	if err != nil {
		return err
	}
	i.UnitPrice = input.UnitPrice
	i.Quantity = input.Quantity
	i.TaxPercent = input.TaxPercent
	i.Amount = totals.Amount
	i.TaxAmount = totals.TaxAmount
	i.Total = totals.Total
	i.UpdatedAt = time.Now()
	return nil
}

// Insurance represents an insurance plan with its covered service lines.
// Order-level totals are always derived from the lines; every mutation runs
// the full recompute cascade.
type Insurance struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	ProviderName string          `gorm:"type:varchar(200)"`
	Description  string          `gorm:"type:text"`
	Items        []InsuranceItem `gorm:"foreignKey:InsuranceID;references:ID"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType DiscountType    `gorm:"type:varchar(20);not null;default:'fixed'"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       InsuranceStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Insurance) TableName() string {
	return "insurances"
}

// NewInsurance creates a new insurance plan with no service lines
func NewInsurance(name, providerName string) (*Insurance, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Insurance name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Insurance name cannot exceed 200 characters")
	}
	return &Insurance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ProviderName:      providerName,
		Items:             make([]InsuranceItem, 0),
		Discount:          decimal.Zero,
		DiscountType:      DiscountTypeFixed,
		Status:            InsuranceStatusActive,
	}, nil
}

// Rename updates the plan name
func (ins *Insurance) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Insurance name cannot be empty")
	}
	ins.Name = name
	ins.UpdatedAt = time.Now()
	ins.IncrementVersion()
	return nil
}

// AddItem adds a covered service line and recomputes all derived totals
func (ins *Insurance) AddItem(serviceName string, input LineInput) (*InsuranceItem, error) {
	item, err := newInsuranceItem(ins.ID, serviceName, input)
	if err != nil {
		return nil, err
	}
	ins.Items = append(ins.Items, *item)
	ins.recalculateTotals()
	ins.UpdatedAt = time.Now()
	ins.IncrementVersion()
	return item, nil
}

// UpdateItem changes the price/quantity/tax inputs of an existing line and
// recomputes all derived totals
func (ins *Insurance) UpdateItem(itemID uuid.UUID, input LineInput) error {
	for idx := range ins.Items {
		if ins.Items[idx].ID == itemID {
			if err := ins.Items[idx].update(input); err != nil {
				return err
			}
			ins.recalculateTotals()
			ins.UpdatedAt = time.Now()
			ins.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Insurance item not found")
}

// RemoveItem removes a service line and recomputes all derived totals
func (ins *Insurance) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range ins.Items {
		if item.ID == itemID {
			ins.Items = append(ins.Items[:idx], ins.Items[idx+1:]...)
			ins.recalculateTotals()
			ins.UpdatedAt = time.Now()
			ins.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Insurance item not found")
}

// SetDiscount applies an order-level discount. Validation rejects a
// percentage outside [0,100] and a fixed discount above the current total.
func (ins *Insurance) SetDiscount(discount decimal.Decimal, discountType DiscountType) error {
	if _, err := ApplyDiscount(ins.TotalAmount, discount, discountType); err != nil {
		return err
	}
	ins.Discount = discount
	ins.DiscountType = discountType
	ins.recalculateTotals()
	ins.UpdatedAt = time.Now()
	ins.IncrementVersion()
	return nil
}

// Activate marks the plan active
func (ins *Insurance) Activate() {
	ins.Status = InsuranceStatusActive
	ins.UpdatedAt = time.Now()
	ins.IncrementVersion()
}

// Deactivate marks the plan inactive
func (ins *Insurance) Deactivate() {
	ins.Status = InsuranceStatusInactive
	ins.UpdatedAt = time.Now()
	ins.IncrementVersion()
}

// recalculateTotals reruns the full cascade over the stored lines. A fixed
// discount that now exceeds the shrunken total is clamped to it so the net
// amount never goes negative.
func (ins *Insurance) recalculateTotals() {
	amount := decimal.Zero
	taxAmount := decimal.Zero
	for _, item := range ins.Items {
		amount = amount.Add(item.Amount)
		taxAmount = taxAmount.Add(item.TaxAmount)
	}
	ins.Amount = amount
	ins.TaxAmount = taxAmount
	ins.TotalAmount = amount.Add(taxAmount)

	if ins.DiscountType == DiscountTypeFixed && ins.Discount.GreaterThan(ins.TotalAmount) {
		ins.Discount = ins.TotalAmount
	}
	net, err := ApplyDiscount(ins.TotalAmount, ins.Discount, ins.DiscountType)
	if err != nil {
		// Stored discount state is always valid; fall back to no discount.
		net = ins.TotalAmount
	}
	ins.NetAmount = net
}
