package pharmacy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
)

// PurchaseService handles supplier purchase orders. Receiving a purchase
// adds the ordered quantities to medicine stock.
type PurchaseService struct {
	purchaseRepo pharmacy.PurchaseRepository
	medicineRepo pharmacy.MedicineRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo pharmacy.PurchaseRepository, medicineRepo pharmacy.MedicineRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		medicineRepo: medicineRepo,
	}
}

// Create opens a purchase order, adds its lines and places it
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	number, err := s.purchaseRepo.NextPurchaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	purchasedAt := time.Now()
	if req.PurchasedAt != nil {
		purchasedAt = *req.PurchasedAt
	}
	purchase, err := pharmacy.NewMedicinePurchase(number, req.SupplierName, purchasedAt)
	if err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	for _, input := range req.Items {
		medicine, err := s.medicineRepo.FindByID(ctx, input.MedicineID)
		if err != nil {
			return nil, err
		}
		_, err = purchase.AddItem(medicine.ID, medicine.Name, billing.LineInput{
			UnitPrice:  input.UnitPrice,
			Quantity:   input.Quantity,
			TaxPercent: input.TaxPercent,
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Discount != nil {
		discountType := billing.DiscountTypeFixed
		if req.DiscountType != "" {
			discountType = billing.DiscountType(req.DiscountType)
		}
		if err := purchase.SetDiscount(*req.Discount, discountType); err != nil {
			return nil, err
		}
	}

	if err := purchase.Place(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List returns one page of purchases after in-memory filtering
func (s *PurchaseService) List(ctx context.Context, q query.ListQuery) (*query.Result[PurchaseResponse], error) {
	records, err := s.purchaseRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, PurchaseSource(), q)

	items := make([]PurchaseResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToPurchaseResponse(&result.Items[i]))
	}
	return &query.Result[PurchaseResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *PurchaseService) Filtered(ctx context.Context, q query.ListQuery) ([]pharmacy.MedicinePurchase, error) {
	records, err := s.purchaseRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, PurchaseSource(), q), nil
}

// Receive marks a purchase as received and adds the quantities to stock
func (s *PurchaseService) Receive(ctx context.Context, id uuid.UUID, req ReceivePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.ReceivedAt != nil {
		at = *req.ReceivedAt
	}
	if err := purchase.Receive(at); err != nil {
		return nil, err
	}

	for _, item := range purchase.Items {
		medicine, err := s.medicineRepo.FindByID(ctx, item.MedicineID)
		if err != nil {
			return nil, err
		}
		if err := medicine.AddStock(item.Quantity); err != nil {
			return nil, err
		}
		if err := s.medicineRepo.Save(ctx, medicine); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Delete removes a purchase. Received purchases stay for the stock ledger.
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase.Status == pharmacy.PurchaseStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Received purchases cannot be deleted")
	}
	return s.purchaseRepo.Delete(ctx, id)
}
