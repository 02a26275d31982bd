package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PackageItem is one treatment line within a package
type PackageItem struct {
	shared.BaseEntity
	PackageID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TreatmentName string          `gorm:"type:varchar(200);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity      int64           `gorm:"not null;default:1"`
	TaxPercent    decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PackageItem) TableName() string {
	return "package_items"
}

// LineInput returns the editable inputs of this item
func (i *PackageItem) LineInput() LineInput {
	return LineInput{UnitPrice: i.UnitPrice, Quantity: i.Quantity, TaxPercent: i.TaxPercent}
}

func newPackageItem(packageID uuid.UUID, treatmentName string, input LineInput) (*PackageItem, error) {
	if treatmentName == "" {
		return nil, shared.NewDomainError("INVALID_TREATMENT_NAME", "Treatment name cannot be empty")
	}
	totals, err := ComputeLine(input.UnitPrice, input.Quantity, input.TaxPercent)
	if err != nil {
		return nil, err
	}
	return &PackageItem{
		BaseEntity:    shared.NewBaseEntity(),
		PackageID:     packageID,
		TreatmentName: treatmentName,
		UnitPrice:     input.UnitPrice,
		Quantity:      input.Quantity,
		TaxPercent:    input.TaxPercent,
		Amount:        totals.Amount,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
	}, nil
}

// TreatmentPackage bundles treatments sold at a package price. Totals are
// derived from the lines through the same cascade as purchases.
type TreatmentPackage struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	Items        []PackageItem   `gorm:"foreignKey:PackageID;references:ID"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType DiscountType    `gorm:"type:varchar(20);not null;default:'fixed'"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TreatmentPackage) TableName() string {
	return "treatment_packages"
}

// NewTreatmentPackage creates an empty treatment package
func NewTreatmentPackage(name, description string) (*TreatmentPackage, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot exceed 200 characters")
	}
	return &TreatmentPackage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Items:             make([]PackageItem, 0),
		Discount:          decimal.Zero,
		DiscountType:      DiscountTypeFixed,
	}, nil
}

// Update changes the package's basic information
func (p *TreatmentPackage) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AddItem adds a treatment line and recomputes all derived totals
func (p *TreatmentPackage) AddItem(treatmentName string, input LineInput) (*PackageItem, error) {
	item, err := newPackageItem(p.ID, treatmentName, input)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, *item)
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return item, nil
}

// UpdateItem changes the inputs of an existing line and recomputes totals
func (p *TreatmentPackage) UpdateItem(itemID uuid.UUID, input LineInput) error {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			totals, err := ComputeLine(input.UnitPrice, input.Quantity, input.TaxPercent)
			if err != nil {
				return err
			}
			item := &p.Items[idx]
			item.UnitPrice = input.UnitPrice
			item.Quantity = input.Quantity
			item.TaxPercent = input.TaxPercent
			item.Amount = totals.Amount
			item.TaxAmount = totals.TaxAmount
			item.Total = totals.Total
			item.UpdatedAt = time.Now()

			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Package item not found")
}

// RemoveItem removes a treatment line and recomputes totals
func (p *TreatmentPackage) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Package item not found")
}

// SetDiscount applies a package-level discount with full validation
func (p *TreatmentPackage) SetDiscount(discount decimal.Decimal, discountType DiscountType) error {
	if _, err := ApplyDiscount(p.TotalAmount, discount, discountType); err != nil {
		return err
	}
	p.Discount = discount
	p.DiscountType = discountType
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *TreatmentPackage) recalculateTotals() {
	amount := decimal.Zero
	taxAmount := decimal.Zero
	for _, item := range p.Items {
		amount = amount.Add(item.Amount)
		taxAmount = taxAmount.Add(item.TaxAmount)
	}
	p.Amount = amount
	p.TaxAmount = taxAmount
	p.TotalAmount = amount.Add(taxAmount)

	if p.DiscountType == DiscountTypeFixed && p.Discount.GreaterThan(p.TotalAmount) {
		p.Discount = p.TotalAmount
	}
	net, err := ApplyDiscount(p.TotalAmount, p.Discount, p.DiscountType)
	if err != nil {
		net = p.TotalAmount
	}
	p.NetAmount = net
}
