package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// PatientRepository manages persistence of patients
type PatientRepository interface {
	shared.Repository[Patient]
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Patient, error)
}

// AdmissionRepository manages persistence of admissions
type AdmissionRepository interface {
	shared.Repository[Admission]
	FindByKind(ctx context.Context, kind AdmissionKind, filter shared.Filter) ([]Admission, error)
	CountAdmittedSince(ctx context.Context, since time.Time) (int64, error)
}
