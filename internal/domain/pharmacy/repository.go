package pharmacy

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// MedicineRepository manages persistence of medicines
type MedicineRepository interface {
	shared.Repository[Medicine]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Medicine, error)
	CountOutOfStock(ctx context.Context) (int64, error)
}

// PurchaseRepository manages persistence of medicine purchases
type PurchaseRepository interface {
	shared.Repository[MedicinePurchase]
	ExistsByNumber(ctx context.Context, purchaseNumber string) (bool, error)
	NextPurchaseNumber(ctx context.Context) (string, error)
}
