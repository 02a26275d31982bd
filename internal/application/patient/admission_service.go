package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
)

// AdmissionService handles IPD/OPD admissions. IPD admissions occupy a bed
// on admit and release it on discharge.
type AdmissionService struct {
	admissionRepo patient.AdmissionRepository
	patientRepo   patient.PatientRepository
	bedRepo       facility.BedRepository
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(
	admissionRepo patient.AdmissionRepository,
	patientRepo patient.PatientRepository,
	bedRepo facility.BedRepository,
) *AdmissionService {
	return &AdmissionService{
		admissionRepo: admissionRepo,
		patientRepo:   patientRepo,
		bedRepo:       bedRepo,
	}
}

func (s *AdmissionService) patientName(ctx context.Context, id uuid.UUID) string {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return p.FullName()
}

// Create admits a patient
func (s *AdmissionService) Create(ctx context.Context, req CreateAdmissionRequest) (*AdmissionResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	admittedAt := time.Now()
	if req.AdmittedAt != nil {
		admittedAt = *req.AdmittedAt
	}

	admission, err := patient.NewAdmission(req.PatientID, patient.AdmissionKind(req.Kind), req.DoctorName, req.BedID, admittedAt)
	if err != nil {
		return nil, err
	}
	if req.Symptoms != "" || req.Notes != "" {
		admission.SetSymptoms(req.Symptoms, req.Notes)
	}

	if admission.Kind == patient.AdmissionIPD {
		bed, err := s.bedRepo.FindByID(ctx, *admission.BedID)
		if err != nil {
			return nil, err
		}
		if err := bed.Occupy(); err != nil {
			return nil, err
		}
		if err := s.bedRepo.Save(ctx, bed); err != nil {
			return nil, err
		}
	}

	if err := s.admissionRepo.Save(ctx, admission); err != nil {
		return nil, err
	}

	response := ToAdmissionResponse(admission, p.FullName())
	return &response, nil
}

// GetByID retrieves an admission by ID
func (s *AdmissionService) GetByID(ctx context.Context, id uuid.UUID) (*AdmissionResponse, error) {
	admission, err := s.admissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAdmissionResponse(admission, s.patientName(ctx, admission.PatientID))
	return &response, nil
}

// List returns one page of admissions of the given kind after in-memory
// filtering. The IPD and OPD screens are separate lists over one table.
func (s *AdmissionService) List(ctx context.Context, kind patient.AdmissionKind, q query.ListQuery) (*query.Result[AdmissionResponse], error) {
	records, err := s.admissionRepo.FindByKind(ctx, kind, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, AdmissionSource(), q)

	items := make([]AdmissionResponse, 0, len(result.Items))
	for i := range result.Items {
		a := &result.Items[i]
		items = append(items, ToAdmissionResponse(a, s.patientName(ctx, a.PatientID)))
	}
	return &query.Result[AdmissionResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *AdmissionService) Filtered(ctx context.Context, kind patient.AdmissionKind, q query.ListQuery) ([]patient.Admission, error) {
	records, err := s.admissionRepo.FindByKind(ctx, kind, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, AdmissionSource(), q), nil
}

// Update changes the attending doctor and notes
func (s *AdmissionService) Update(ctx context.Context, id uuid.UUID, req UpdateAdmissionRequest) (*AdmissionResponse, error) {
	admission, err := s.admissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := admission.ChangeDoctor(req.DoctorName); err != nil {
		return nil, err
	}
	admission.SetSymptoms(req.Symptoms, req.Notes)

	if err := s.admissionRepo.Save(ctx, admission); err != nil {
		return nil, err
	}
	response := ToAdmissionResponse(admission, s.patientName(ctx, admission.PatientID))
	return &response, nil
}

// Discharge closes an admission and releases the bed for IPD
func (s *AdmissionService) Discharge(ctx context.Context, id uuid.UUID, req DischargeRequest) (*AdmissionResponse, error) {
	admission, err := s.admissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.DischargedAt != nil {
		at = *req.DischargedAt
	}
	if err := admission.Discharge(at); err != nil {
		return nil, err
	}

	if admission.Kind == patient.AdmissionIPD && admission.BedID != nil {
		bed, err := s.bedRepo.FindByID(ctx, *admission.BedID)
		if err == nil {
			bed.Release()
			if err := s.bedRepo.Save(ctx, bed); err != nil {
				return nil, err
			}
		}
	}

	if err := s.admissionRepo.Save(ctx, admission); err != nil {
		return nil, err
	}
	response := ToAdmissionResponse(admission, s.patientName(ctx, admission.PatientID))
	return &response, nil
}

// Delete removes an admission record. An open IPD admission releases its bed.
func (s *AdmissionService) Delete(ctx context.Context, id uuid.UUID) error {
	admission, err := s.admissionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if admission.Status == patient.AdmissionStatusAdmitted && admission.Kind == patient.AdmissionIPD && admission.BedID != nil {
		bed, err := s.bedRepo.FindByID(ctx, *admission.BedID)
		if err == nil {
			bed.Release()
			if err := s.bedRepo.Save(ctx, bed); err != nil {
				return err
			}
		}
	}
	return s.admissionRepo.Delete(ctx, id)
}
