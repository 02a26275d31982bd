package patient

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// AdmissionKind distinguishes in-patient (IPD) from out-patient (OPD)
// department admissions. The two kinds share one record shape; IPD
// additionally occupies a bed.
type AdmissionKind string

const (
	AdmissionIPD AdmissionKind = "IPD"
	AdmissionOPD AdmissionKind = "OPD"
)

// AdmissionStatus is used by list screens for status filtering
type AdmissionStatus string

const (
	AdmissionStatusAdmitted   AdmissionStatus = "admitted"
	AdmissionStatusDischarged AdmissionStatus = "discharged"
)

// Admission records one IPD or OPD admission of a patient
type Admission struct {
	shared.BaseAggregateRoot
	PatientID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Kind         AdmissionKind `gorm:"type:varchar(5);not null;index"`
	DoctorName   string        `gorm:"type:varchar(200);not null"`
	BedID        *uuid.UUID    `gorm:"type:uuid;index"` // set for IPD only
	AdmittedAt   time.Time     `gorm:"not null;index"`
	DischargedAt *time.Time
	Status       AdmissionStatus `gorm:"type:varchar(20);not null;default:'admitted'"`
	Symptoms     string          `gorm:"type:text"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Admission) TableName() string {
	return "admissions"
}

// NewAdmission admits a patient. IPD admissions require a bed; OPD
// admissions must not carry one.
func NewAdmission(patientID uuid.UUID, kind AdmissionKind, doctorName string, bedID *uuid.UUID, admittedAt time.Time) (*Admission, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID cannot be empty")
	}
	if doctorName == "" {
		return nil, shared.NewDomainError("INVALID_DOCTOR", "Doctor name cannot be empty")
	}
	switch kind {
	case AdmissionIPD:
		if bedID == nil || *bedID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_BED", "IPD admission requires a bed")
		}
	case AdmissionOPD:
		if bedID != nil {
			return nil, shared.NewDomainError("INVALID_BED", "OPD admission cannot occupy a bed")
		}
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Admission kind must be IPD or OPD")
	}
	if admittedAt.IsZero() {
		admittedAt = time.Now()
	}
	return &Admission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		Kind:              kind,
		DoctorName:        doctorName,
		BedID:             bedID,
		AdmittedAt:        admittedAt,
		Status:            AdmissionStatusAdmitted,
	}, nil
}

// SetSymptoms records presenting symptoms and notes
func (a *Admission) SetSymptoms(symptoms, notes string) {
	a.Symptoms = symptoms
	a.Notes = notes
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// ChangeDoctor reassigns the attending doctor
func (a *Admission) ChangeDoctor(doctorName string) error {
	if doctorName == "" {
		return shared.NewDomainError("INVALID_DOCTOR", "Doctor name cannot be empty")
	}
	a.DoctorName = doctorName
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Discharge closes the admission. The bed is released by the service layer.
func (a *Admission) Discharge(at time.Time) error {
	if a.Status == AdmissionStatusDischarged {
		return shared.NewDomainError("INVALID_STATE", "Admission is already discharged")
	}
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(a.AdmittedAt) {
		return shared.NewDomainError("INVALID_DATE", "Discharge cannot precede admission")
	}
	a.Status = AdmissionStatusDischarged
	a.DischargedAt = &at
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}
