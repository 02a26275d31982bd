package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/listing"
	"github.com/shopspring/decimal"
)

// LineItemInput represents one service or treatment line in a request
type LineItemInput struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
}

// LineItemResponse represents one derived line in API responses
type LineItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Amount     decimal.Decimal `json:"amount"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
}

// CreateInsuranceRequest represents a request to create an insurance plan
type CreateInsuranceRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	ProviderName string           `json:"provider_name" binding:"max=200"`
	Items        []LineItemInput  `json:"items" binding:"dive"`
	Discount     *decimal.Decimal `json:"discount"`
	DiscountType string           `json:"discount_type" binding:"omitempty,oneof=fixed percentage"`
}

// UpdateInsuranceRequest represents a request to update plan details
type UpdateInsuranceRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Active *bool  `json:"active"`
}

// UpdateLineItemRequest represents a change to one line's inputs
type UpdateLineItemRequest struct {
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
}

// SetDiscountRequest represents a change to the order-level discount
type SetDiscountRequest struct {
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discount_type" binding:"required,oneof=fixed percentage"`
}

// InsuranceResponse represents an insurance plan in API responses
type InsuranceResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	ProviderName string             `json:"provider_name"`
	Items        []LineItemResponse `json:"items"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType string             `json:"discount_type"`
	Amount       decimal.Decimal    `json:"amount"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	NetAmount    decimal.Decimal    `json:"net_amount"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToInsuranceResponse converts an insurance plan to its API representation
func ToInsuranceResponse(ins *billing.Insurance) InsuranceResponse {
	items := make([]LineItemResponse, 0, len(ins.Items))
	for _, item := range ins.Items {
		items = append(items, LineItemResponse{
			ID:         item.ID,
			Name:       item.ServiceName,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TaxPercent: item.TaxPercent,
			Amount:     item.Amount,
			TaxAmount:  item.TaxAmount,
			Total:      item.Total,
		})
	}
	return InsuranceResponse{
		ID:           ins.ID,
		Name:         ins.Name,
		ProviderName: ins.ProviderName,
		Items:        items,
		Discount:     ins.Discount,
		DiscountType: string(ins.DiscountType),
		Amount:       ins.Amount,
		TaxAmount:    ins.TaxAmount,
		TotalAmount:  ins.TotalAmount,
		NetAmount:    ins.NetAmount,
		Status:       string(ins.Status),
		CreatedAt:    ins.CreatedAt,
		UpdatedAt:    ins.UpdatedAt,
	}
}

// InsuranceSource feeds insurance plans to the listing controller
func InsuranceSource() listing.Source[billing.Insurance] {
	return listing.Source[billing.Insurance]{
		SearchFields: func(ins billing.Insurance) []string {
			return []string{ins.Name, ins.ProviderName}
		},
		Timestamp: func(ins billing.Insurance) time.Time { return ins.CreatedAt },
		Status:    func(ins billing.Insurance) string { return string(ins.Status) },
	}
}

// CreatePackageRequest represents a request to create a treatment package
type CreatePackageRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=2000"`
	Items        []LineItemInput  `json:"items" binding:"dive"`
	Discount     *decimal.Decimal `json:"discount"`
	DiscountType string           `json:"discount_type" binding:"omitempty,oneof=fixed percentage"`
}

// UpdatePackageRequest represents a request to update package details
type UpdatePackageRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// PackageResponse represents a treatment package in API responses
type PackageResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Items        []LineItemResponse `json:"items"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType string             `json:"discount_type"`
	Amount       decimal.Decimal    `json:"amount"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	NetAmount    decimal.Decimal    `json:"net_amount"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToPackageResponse converts a treatment package to its API representation
func ToPackageResponse(p *billing.TreatmentPackage) PackageResponse {
	items := make([]LineItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, LineItemResponse{
			ID:         item.ID,
			Name:       item.TreatmentName,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TaxPercent: item.TaxPercent,
			Amount:     item.Amount,
			TaxAmount:  item.TaxAmount,
			Total:      item.Total,
		})
	}
	return PackageResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Items:        items,
		Discount:     p.Discount,
		DiscountType: string(p.DiscountType),
		Amount:       p.Amount,
		TaxAmount:    p.TaxAmount,
		TotalAmount:  p.TotalAmount,
		NetAmount:    p.NetAmount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PackageSource feeds treatment packages to the listing controller
func PackageSource() listing.Source[billing.TreatmentPackage] {
	return listing.Source[billing.TreatmentPackage]{
		SearchFields: func(p billing.TreatmentPackage) []string {
			fields := []string{p.Name, p.Description}
			for _, item := range p.Items {
				fields = append(fields, item.TreatmentName)
			}
			return fields
		},
		Timestamp: func(p billing.TreatmentPackage) time.Time { return p.CreatedAt },
	}
}
