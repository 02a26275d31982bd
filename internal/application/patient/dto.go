package patient

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/listing"
	"github.com/hms/backend/internal/domain/patient"
)

// CreatePatientRequest represents a request to register a patient
type CreatePatientRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"max=30"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodGroup   string `json:"blood_group" binding:"max=5"`
	Address      string `json:"address" binding:"max=1000"`
	ProfileImage string `json:"profile_image" binding:"max=500"`
}

// UpdatePatientRequest represents a request to update a patient
type UpdatePatientRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	Phone        string `json:"phone" binding:"max=30"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodGroup   string `json:"blood_group" binding:"max=5"`
	Address      string `json:"address" binding:"max=1000"`
	ProfileImage string `json:"profile_image" binding:"max=500"`
}

// PatientResponse represents a patient in API responses
type PatientResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Gender       string    `json:"gender"`
	BloodGroup   string    `json:"blood_group"`
	Address      string    `json:"address"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToPatientResponse converts a patient to its API representation
func ToPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FullName:     p.FullName(),
		Email:        p.Email,
		Phone:        p.Phone,
		Gender:       string(p.Gender),
		BloodGroup:   p.BloodGroup,
		Address:      p.Address,
		ProfileImage: p.ProfileImage,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PatientSource feeds patients to the listing controller
func PatientSource() listing.Source[patient.Patient] {
	return listing.Source[patient.Patient]{
		SearchFields: func(p patient.Patient) []string {
			return []string{p.FullName(), p.Email, p.Phone, p.BloodGroup}
		},
		Timestamp: func(p patient.Patient) time.Time { return p.CreatedAt },
	}
}

// CreateAdmissionRequest represents a request to admit a patient
type CreateAdmissionRequest struct {
	PatientID  uuid.UUID  `json:"patient_id" binding:"required"`
	Kind       string     `json:"kind" binding:"required,oneof=IPD OPD"`
	DoctorName string     `json:"doctor_name" binding:"required,min=1,max=200"`
	BedID      *uuid.UUID `json:"bed_id"`
	AdmittedAt *time.Time `json:"admitted_at"`
	Symptoms   string     `json:"symptoms" binding:"max=2000"`
	Notes      string     `json:"notes" binding:"max=2000"`
}

// UpdateAdmissionRequest represents a request to update an admission
type UpdateAdmissionRequest struct {
	DoctorName string `json:"doctor_name" binding:"required,min=1,max=200"`
	Symptoms   string `json:"symptoms" binding:"max=2000"`
	Notes      string `json:"notes" binding:"max=2000"`
}

// DischargeRequest represents a request to discharge an admission
type DischargeRequest struct {
	DischargedAt *time.Time `json:"discharged_at"`
}

// AdmissionResponse represents an admission in API responses
type AdmissionResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	PatientName  string     `json:"patient_name,omitempty"`
	Kind         string     `json:"kind"`
	DoctorName   string     `json:"doctor_name"`
	BedID        *uuid.UUID `json:"bed_id,omitempty"`
	AdmittedAt   time.Time  `json:"admitted_at"`
	DischargedAt *time.Time `json:"discharged_at,omitempty"`
	Status       string     `json:"status"`
	Symptoms     string     `json:"symptoms"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToAdmissionResponse converts an admission to its API representation
func ToAdmissionResponse(a *patient.Admission, patientName string) AdmissionResponse {
	return AdmissionResponse{
		ID:           a.ID,
		PatientID:    a.PatientID,
		PatientName:  patientName,
		Kind:         string(a.Kind),
		DoctorName:   a.DoctorName,
		BedID:        a.BedID,
		AdmittedAt:   a.AdmittedAt,
		DischargedAt: a.DischargedAt,
		Status:       string(a.Status),
		Symptoms:     a.Symptoms,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AdmissionSource feeds admissions to the listing controller. Patient names
// are resolved separately, so search covers the doctor and symptoms only;
// the admission date drives the date filter.
func AdmissionSource() listing.Source[patient.Admission] {
	return listing.Source[patient.Admission]{
		SearchFields: func(a patient.Admission) []string {
			return []string{a.DoctorName, a.Symptoms, string(a.Kind)}
		},
		Timestamp: func(a patient.Admission) time.Time { return a.AdmittedAt },
		Status:    func(a patient.Admission) string { return string(a.Status) },
	}
}
