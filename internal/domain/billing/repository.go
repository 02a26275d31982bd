package billing

import (
	"context"

	"github.com/hms/backend/internal/domain/shared"
)

// InsuranceRepository manages persistence of insurance plans
type InsuranceRepository interface {
	shared.Repository[Insurance]
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// TreatmentPackageRepository manages persistence of treatment packages
type TreatmentPackageRepository interface {
	shared.Repository[TreatmentPackage]
	ExistsByName(ctx context.Context, name string) (bool, error)
}
