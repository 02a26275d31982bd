package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// PathologyCategoryRepository manages persistence of pathology categories
type PathologyCategoryRepository interface {
	shared.Repository[PathologyCategory]
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// PrescriptionRepository manages persistence of prescriptions
type PrescriptionRepository interface {
	shared.Repository[Prescription]
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]Prescription, error)
}

// InvestigationReportRepository manages persistence of investigation reports
type InvestigationReportRepository interface {
	shared.Repository[InvestigationReport]
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]InvestigationReport, error)
}
