package pharmacy

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseStatus tracks a purchase order's lifecycle
type PurchaseStatus string

const (
	PurchaseStatusDraft    PurchaseStatus = "draft"
	PurchaseStatusOrdered  PurchaseStatus = "ordered"
	PurchaseStatusReceived PurchaseStatus = "received"
)

// PurchaseItem is one medicine line on a purchase order. The derived columns
// are recomputed through the billing calculator whenever an input changes.
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineName string          `gorm:"type:varchar(200);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity     int64           `gorm:"not null;default:1"`
	TaxPercent   decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

func (i *PurchaseItem) apply(input billing.LineInput) error {
	totals, err := billing.ComputeLine(input.UnitPrice, input.Quantity, input.TaxPercent)
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

// MedicinePurchase is a supplier purchase order for pharmacy stock
type MedicinePurchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierName   string               `gorm:"type:varchar(200);not null"`
	Items          []PurchaseItem       `gorm:"foreignKey:PurchaseID;references:ID"`
	Discount       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType   billing.DiscountType `gorm:"type:varchar(20);not null;default:'fixed'"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status         PurchaseStatus       `gorm:"type:varchar(20);not null;default:'draft'"`
	PurchasedAt    time.Time            `gorm:"not null;index"`
	ReceivedAt     *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MedicinePurchase) TableName() string {
	return "medicine_purchases"
}

// NewMedicinePurchase opens a draft purchase order
func NewMedicinePurchase(purchaseNumber, supplierName string, purchasedAt time.Time) (*MedicinePurchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if purchasedAt.IsZero() {
		purchasedAt = time.Now()
	}
	return &MedicinePurchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		SupplierName:      supplierName,
		Items:             make([]PurchaseItem, 0),
		Discount:          decimal.Zero,
		DiscountType:      billing.DiscountTypeFixed,
		Status:            PurchaseStatusDraft,
		PurchasedAt:       purchasedAt,
	}, nil
}

// AddItem adds a medicine line. Only allowed while the order is a draft.
func (p *MedicinePurchase) AddItem(medicineID uuid.UUID, medicineName string, input billing.LineInput) (*PurchaseItem, error) {
	if p.Status != PurchaseStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase")
	}
	if medicineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDICINE", "Medicine ID cannot be empty")
	}
	for _, item := range p.Items {
		if item.MedicineID == medicineID {
			return nil, shared.NewDomainError("DUPLICATE_MEDICINE", "Medicine already on the purchase, update the line instead")
		}
	}

	item := PurchaseItem{
		BaseEntity:   shared.NewBaseEntity(),
		PurchaseID:   p.ID,
		MedicineID:   medicineID,
		MedicineName: medicineName,
	}
	if err := item.apply(input); err != nil {
		return nil, err
	}

	p.Items = append(p.Items, item)
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return &item, nil
}

// UpdateItem changes a line's inputs and reruns the full cascade
func (p *MedicinePurchase) UpdateItem(itemID uuid.UUID, input billing.LineInput) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items on a non-draft purchase")
	}
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			if err := p.Items[idx].apply(input); err != nil {
				return err
			}
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// RemoveItem drops a line and reruns the full cascade
func (p *MedicinePurchase) RemoveItem(itemID uuid.UUID) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft purchase")
	}
	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// SetDiscount applies an order-level discount with full validation
func (p *MedicinePurchase) SetDiscount(discount decimal.Decimal, discountType billing.DiscountType) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change discount on a non-draft purchase")
	}
	if _, err := billing.ApplyDiscount(p.TotalAmount, discount, discountType); err != nil {
		return err
	}
	p.Discount = discount
	p.DiscountType = discountType
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Place moves the draft to ordered. An empty order cannot be placed.
func (p *MedicinePurchase) Place() error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft purchases can be placed")
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("EMPTY_PURCHASE", "Cannot place a purchase with no items")
	}
	p.Status = PurchaseStatusOrdered
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Receive marks the goods as received. Stock updates happen in the service
// layer, which looks up each line's medicine.
func (p *MedicinePurchase) Receive(at time.Time) error {
	if p.Status != PurchaseStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive a purchase in status %s", p.Status))
	}
	if at.IsZero() {
		at = time.Now()
	}
	p.Status = PurchaseStatusReceived
	p.ReceivedAt = &at
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *MedicinePurchase) recalculateTotals() {
	amount := decimal.Zero
	taxAmount := decimal.Zero
	for _, item := range p.Items {
		amount = amount.Add(item.Amount)
		taxAmount = taxAmount.Add(item.TaxAmount)
	}
	p.Amount = amount
	p.TaxAmount = taxAmount
	p.TotalAmount = amount.Add(taxAmount)

	if p.DiscountType == billing.DiscountTypeFixed && p.Discount.GreaterThan(p.TotalAmount) {
		p.Discount = p.TotalAmount
	}
	net, err := billing.ApplyDiscount(p.TotalAmount, p.Discount, p.DiscountType)
	if err != nil {
		net = p.TotalAmount
	}
	p.NetAmount = net
}
