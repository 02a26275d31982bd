package clinical

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
)

// PrescriptionService handles doctors' prescriptions
type PrescriptionService struct {
	prescriptionRepo clinical.PrescriptionRepository
	patientRepo      patient.PatientRepository
}

// NewPrescriptionService creates a new PrescriptionService
func NewPrescriptionService(prescriptionRepo clinical.PrescriptionRepository, patientRepo patient.PatientRepository) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
	}
}

func (s *PrescriptionService) patientName(ctx context.Context, id uuid.UUID) string {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return p.FullName()
}

// Create writes a prescription for a patient
func (s *PrescriptionService) Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	prescribedAt := time.Now()
	if req.PrescribedAt != nil {
		prescribedAt = *req.PrescribedAt
	}
	prescription, err := clinical.NewPrescription(req.PatientID, req.DoctorName, prescribedAt)
	if err != nil {
		return nil, err
	}
	prescription.Notes = req.Notes
	for _, line := range req.Lines {
		if _, err := prescription.AddLine(line.Medicine, line.Dosage, line.Duration); err != nil {
			return nil, err
		}
	}

	if err := s.prescriptionRepo.Save(ctx, prescription); err != nil {
		return nil, err
	}
	response := ToPrescriptionResponse(prescription, p.FullName())
	return &response, nil
}

// GetByID retrieves a prescription by ID
func (s *PrescriptionService) GetByID(ctx context.Context, id uuid.UUID) (*PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPrescriptionResponse(prescription, s.patientName(ctx, prescription.PatientID))
	return &response, nil
}

// List returns one page of prescriptions after in-memory filtering
func (s *PrescriptionService) List(ctx context.Context, q query.ListQuery) (*query.Result[PrescriptionResponse], error) {
	records, err := s.prescriptionRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, PrescriptionSource(), q)

	items := make([]PrescriptionResponse, 0, len(result.Items))
	for i := range result.Items {
		p := &result.Items[i]
		items = append(items, ToPrescriptionResponse(p, s.patientName(ctx, p.PatientID)))
	}
	return &query.Result[PrescriptionResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *PrescriptionService) Filtered(ctx context.Context, q query.ListQuery) ([]clinical.Prescription, error) {
	records, err := s.prescriptionRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, PrescriptionSource(), q), nil
}

// Update changes the prescription header fields
func (s *PrescriptionService) Update(ctx context.Context, id uuid.UUID, req UpdatePrescriptionRequest) (*PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prescribedAt := time.Time{}
	if req.PrescribedAt != nil {
		prescribedAt = *req.PrescribedAt
	}
	if err := prescription.Update(req.DoctorName, prescribedAt, req.Notes); err != nil {
		return nil, err
	}
	if err := s.prescriptionRepo.Save(ctx, prescription); err != nil {
		return nil, err
	}
	response := ToPrescriptionResponse(prescription, s.patientName(ctx, prescription.PatientID))
	return &response, nil
}

// AddLine appends a medicine line
func (s *PrescriptionService) AddLine(ctx context.Context, id uuid.UUID, req PrescriptionLineInput) (*PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := prescription.AddLine(req.Medicine, req.Dosage, req.Duration); err != nil {
		return nil, err
	}
	if err := s.prescriptionRepo.Save(ctx, prescription); err != nil {
		return nil, err
	}
	response := ToPrescriptionResponse(prescription, s.patientName(ctx, prescription.PatientID))
	return &response, nil
}

// RemoveLine drops a medicine line
func (s *PrescriptionService) RemoveLine(ctx context.Context, id, lineID uuid.UUID) (*PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := prescription.RemoveLine(lineID); err != nil {
		return nil, err
	}
	if err := s.prescriptionRepo.Save(ctx, prescription); err != nil {
		return nil, err
	}
	response := ToPrescriptionResponse(prescription, s.patientName(ctx, prescription.PatientID))
	return &response, nil
}

// Delete removes a prescription
func (s *PrescriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.prescriptionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.prescriptionRepo.Delete(ctx, id)
}
