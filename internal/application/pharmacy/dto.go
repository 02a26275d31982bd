package pharmacy

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/listing"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/shopspring/decimal"
)

// CreateMedicineRequest represents a request to add a medicine
type CreateMedicineRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Brand        string          `json:"brand" binding:"max=200"`
	Category     string          `json:"category" binding:"max=100"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	Description  string          `json:"description" binding:"max=2000"`
}

// UpdateMedicineRequest represents a request to update a medicine
type UpdateMedicineRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Brand        string          `json:"brand" binding:"max=200"`
	Category     string          `json:"category" binding:"max=100"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	Description  string          `json:"description" binding:"max=2000"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// MedicineResponse represents a medicine in API responses
type MedicineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StockQty     int64           `json:"stock_qty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToMedicineResponse converts a medicine to its API representation
func ToMedicineResponse(m *pharmacy.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:           m.ID,
		Name:         m.Name,
		Brand:        m.Brand,
		Category:     m.Category,
		SellingPrice: m.SellingPrice,
		StockQty:     m.StockQty,
		ExpiryDate:   m.ExpiryDate,
		Description:  m.Description,
		Status:       string(m.Status()),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// MedicineSource feeds medicines to the listing controller
func MedicineSource() listing.Source[pharmacy.Medicine] {
	return listing.Source[pharmacy.Medicine]{
		SearchFields: func(m pharmacy.Medicine) []string {
			return []string{m.Name, m.Brand, m.Category}
		},
		Timestamp: func(m pharmacy.Medicine) time.Time { return m.CreatedAt },
		Status:    func(m pharmacy.Medicine) string { return string(m.Status()) },
	}
}

// PurchaseItemInput represents one medicine line in a purchase request
type PurchaseItemInput struct {
	MedicineID uuid.UUID       `json:"medicine_id" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
}

// CreatePurchaseRequest represents a request to open a purchase order
type CreatePurchaseRequest struct {
	SupplierName string              `json:"supplier_name" binding:"required,min=1,max=200"`
	PurchasedAt  *time.Time          `json:"purchased_at"`
	Items        []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
	Discount     *decimal.Decimal    `json:"discount"`
	DiscountType string              `json:"discount_type" binding:"omitempty,oneof=fixed percentage"`
	Notes        string              `json:"notes" binding:"max=2000"`
}

// UpdatePurchaseItemRequest represents a change to one purchase line
type UpdatePurchaseItemRequest struct {
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
}

// SetDiscountRequest represents a change to the order-level discount
type SetDiscountRequest struct {
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discount_type" binding:"required,oneof=fixed percentage"`
}

// ReceivePurchaseRequest represents a request to receive ordered goods
type ReceivePurchaseRequest struct {
	ReceivedAt *time.Time `json:"received_at"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	MedicineID   uuid.UUID       `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int64           `json:"quantity"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	Amount       decimal.Decimal `json:"amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
}

// PurchaseResponse represents a purchase order in API responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierName   string                 `json:"supplier_name"`
	Items          []PurchaseItemResponse `json:"items"`
	Discount       decimal.Decimal        `json:"discount"`
	DiscountType   string                 `json:"discount_type"`
	Amount         decimal.Decimal        `json:"amount"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	NetAmount      decimal.Decimal        `json:"net_amount"`
	Status         string                 `json:"status"`
	PurchasedAt    time.Time              `json:"purchased_at"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	Notes          string                 `json:"notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase to its API representation
func ToPurchaseResponse(p *pharmacy.MedicinePurchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:           item.ID,
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			TaxPercent:   item.TaxPercent,
			Amount:       item.Amount,
			TaxAmount:    item.TaxAmount,
			Total:        item.Total,
		})
	}
	return PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierName:   p.SupplierName,
		Items:          items,
		Discount:       p.Discount,
		DiscountType:   string(p.DiscountType),
		Amount:         p.Amount,
		TaxAmount:      p.TaxAmount,
		TotalAmount:    p.TotalAmount,
		NetAmount:      p.NetAmount,
		Status:         string(p.Status),
		PurchasedAt:    p.PurchasedAt,
		ReceivedAt:     p.ReceivedAt,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// PurchaseSource feeds purchases to the listing controller
func PurchaseSource() listing.Source[pharmacy.MedicinePurchase] {
	return listing.Source[pharmacy.MedicinePurchase]{
		SearchFields: func(p pharmacy.MedicinePurchase) []string {
			fields := []string{p.PurchaseNumber, p.SupplierName}
			for _, item := range p.Items {
				fields = append(fields, item.MedicineName)
			}
			return fields
		},
		Timestamp: func(p pharmacy.MedicinePurchase) time.Time { return p.PurchasedAt },
		Status:    func(p pharmacy.MedicinePurchase) string { return string(p.Status) },
	}
}
