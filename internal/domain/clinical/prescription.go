package clinical

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// PrescriptionLine is one free-text medicine line on a prescription,
// e.g. "Paracetamol 500mg, 1 tablet twice daily".
type PrescriptionLine struct {
	shared.BaseEntity
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Medicine       string    `gorm:"type:varchar(300);not null"`
	Dosage         string    `gorm:"type:varchar(200)"`
	Duration       string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PrescriptionLine) TableName() string {
	return "prescription_lines"
}

// Prescription is a doctor's medicine order for a patient
type Prescription struct {
	shared.BaseAggregateRoot
	PatientID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	DoctorName   string             `gorm:"type:varchar(200);not null"`
	Lines        []PrescriptionLine `gorm:"foreignKey:PrescriptionID;references:ID"`
	PrescribedAt time.Time          `gorm:"not null;index"`
	Notes        string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Prescription) TableName() string {
	return "prescriptions"
}

// NewPrescription creates a prescription with at least one medicine line
func NewPrescription(patientID uuid.UUID, doctorName string, prescribedAt time.Time) (*Prescription, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID cannot be empty")
	}
	if strings.TrimSpace(doctorName) == "" {
		return nil, shared.NewDomainError("INVALID_DOCTOR", "Doctor name cannot be empty")
	}
	if prescribedAt.IsZero() {
		prescribedAt = time.Now()
	}
	return &Prescription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		DoctorName:        doctorName,
		Lines:             make([]PrescriptionLine, 0),
		PrescribedAt:      prescribedAt,
	}, nil
}

// AddLine appends a medicine line
func (p *Prescription) AddLine(medicine, dosage, duration string) (*PrescriptionLine, error) {
	if strings.TrimSpace(medicine) == "" {
		return nil, shared.NewDomainError("INVALID_MEDICINE", "Medicine cannot be empty")
	}
	line := PrescriptionLine{
		BaseEntity:     shared.NewBaseEntity(),
		PrescriptionID: p.ID,
		Medicine:       medicine,
		Dosage:         dosage,
		Duration:       duration,
	}
	p.Lines = append(p.Lines, line)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return &line, nil
}

// RemoveLine drops a medicine line. A prescription must keep at least one line.
func (p *Prescription) RemoveLine(lineID uuid.UUID) error {
	if len(p.Lines) <= 1 {
		return shared.NewDomainError("LAST_LINE", "A prescription must have at least one medicine line")
	}
	for idx, line := range p.Lines {
		if line.ID == lineID {
			p.Lines = append(p.Lines[:idx], p.Lines[idx+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Prescription line not found")
}

// Update changes the prescription header fields
func (p *Prescription) Update(doctorName string, prescribedAt time.Time, notes string) error {
	if strings.TrimSpace(doctorName) == "" {
		return shared.NewDomainError("INVALID_DOCTOR", "Doctor name cannot be empty")
	}
	p.DoctorName = doctorName
	if !prescribedAt.IsZero() {
		p.PrescribedAt = prescribedAt
	}
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
