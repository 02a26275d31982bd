package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// BedTypeRepository manages persistence of bed types
type BedTypeRepository interface {
	shared.Repository[BedType]
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]BedType, error)
}

// BedRepository manages persistence of beds
type BedRepository interface {
	shared.Repository[Bed]
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	CountAvailable(ctx context.Context) (int64, error)
}
