package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// StaffRepository manages persistence of staff members
type StaffRepository interface {
	shared.Repository[StaffMember]
	FindByRole(ctx context.Context, role Role, filter shared.Filter) ([]StaffMember, error)
	FindByEmail(ctx context.Context, email string) (*StaffMember, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]StaffMember, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// PayrollRepository manages persistence of payrolls
type PayrollRepository interface {
	shared.Repository[Payroll]
	FindByStaff(ctx context.Context, staffID uuid.UUID) ([]Payroll, error)
	ExistsForPeriod(ctx context.Context, staffID uuid.UUID, month, year int) (bool, error)
}
