package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
)

// ImageRemover deletes stored profile images when a record drops its image
type ImageRemover interface {
	Remove(ctx context.Context, path string) error
}

// PatientService handles patient registration and record keeping
type PatientService struct {
	patientRepo patient.PatientRepository
	images      ImageRemover
}

// NewPatientService creates a new PatientService
func NewPatientService(patientRepo patient.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// SetImageRemover wires the image store for profile image cleanup
func (s *PatientService) SetImageRemover(images ImageRemover) {
	s.images = images
}

// Create registers a new patient
func (s *PatientService) Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	existing, err := s.patientRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Patient with this email already exists")
	}

	p, err := patient.NewPatient(req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	if err := p.SetGender(patient.Gender(req.Gender)); err != nil {
		return nil, err
	}
	if err := p.SetBloodGroup(req.BloodGroup); err != nil {
		return nil, err
	}
	p.SetContact(req.Phone, req.Address)
	if req.ProfileImage != "" {
		p.SetProfileImage(req.ProfileImage)
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPatientResponse(p)
	return &response, nil
}

// GetByID retrieves a patient by ID
func (s *PatientService) GetByID(ctx context.Context, id uuid.UUID) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPatientResponse(p)
	return &response, nil
}

// List returns one page of patients after in-memory filtering
func (s *PatientService) List(ctx context.Context, q query.ListQuery) (*query.Result[PatientResponse], error) {
	records, err := s.patientRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, PatientSource(), q)

	items := make([]PatientResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToPatientResponse(&result.Items[i]))
	}
	return &query.Result[PatientResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *PatientService) Filtered(ctx context.Context, q query.ListQuery) ([]patient.Patient, error) {
	records, err := s.patientRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, PatientSource(), q), nil
}

// Update updates a patient record. A replaced or cleared profile image is
// removed from the image store best-effort.
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateName(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := p.SetGender(patient.Gender(req.Gender)); err != nil {
		return nil, err
	}
	if err := p.SetBloodGroup(req.BloodGroup); err != nil {
		return nil, err
	}
	p.SetContact(req.Phone, req.Address)

	oldImage := p.ProfileImage
	if req.ProfileImage != oldImage {
		p.SetProfileImage(req.ProfileImage)
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	if s.images != nil && oldImage != "" && oldImage != req.ProfileImage {
		_ = s.images.Remove(ctx, oldImage)
	}

	response := ToPatientResponse(p)
	return &response, nil
}

// Delete removes a patient record and its stored profile image
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.images != nil && p.ProfileImage != "" {
		_ = s.images.Remove(ctx, p.ProfileImage)
	}
	return nil
}
