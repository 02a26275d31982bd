package clinical

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
)

// ReportStatus is the list-screen status of an investigation report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusCompleted ReportStatus = "completed"
)

// InvestigationReport is a diagnostic report for a patient, optionally
// with an uploaded attachment from the image server.
type InvestigationReport struct {
	shared.BaseAggregateRoot
	PatientID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	CategoryID     *uuid.UUID   `gorm:"type:uuid;index"`
	Title          string       `gorm:"type:varchar(300);not null"`
	Description    string       `gorm:"type:text"`
	ReportDate     time.Time    `gorm:"not null;index"`
	Status         ReportStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AttachmentPath string       `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvestigationReport) TableName() string {
	return "investigation_reports"
}

// NewInvestigationReport creates a pending report
func NewInvestigationReport(patientID uuid.UUID, title string, reportDate time.Time) (*InvestigationReport, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if reportDate.IsZero() {
		reportDate = time.Now()
	}
	return &InvestigationReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		Title:             title,
		ReportDate:        reportDate,
		Status:            ReportStatusPending,
	}, nil
}

// Update changes the report's editable fields
func (r *InvestigationReport) Update(title, description string, reportDate time.Time, categoryID *uuid.UUID) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	r.Title = title
	r.Description = description
	if !reportDate.IsZero() {
		r.ReportDate = reportDate
	}
	r.CategoryID = categoryID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// AttachFile records the uploaded attachment path
func (r *InvestigationReport) AttachFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment path cannot be empty")
	}
	r.AttachmentPath = path
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Complete marks the report as completed
func (r *InvestigationReport) Complete() error {
	if r.Status == ReportStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Report is already completed")
	}
	r.Status = ReportStatusCompleted
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
