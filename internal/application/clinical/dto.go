package clinical

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/listing"
)

// CreateCategoryRequest represents a request to create a pathology category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a pathology category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a pathology category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category to its API representation
func ToCategoryResponse(c *clinical.PathologyCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CategorySource feeds pathology categories to the listing controller
func CategorySource() listing.Source[clinical.PathologyCategory] {
	return listing.Source[clinical.PathologyCategory]{
		SearchFields: func(c clinical.PathologyCategory) []string {
			return []string{c.Name, c.Description}
		},
		Timestamp: func(c clinical.PathologyCategory) time.Time { return c.CreatedAt },
	}
}

// PrescriptionLineInput represents one medicine line in a request
type PrescriptionLineInput struct {
	Medicine string `json:"medicine" binding:"required,min=1,max=300"`
	Dosage   string `json:"dosage" binding:"max=200"`
	Duration string `json:"duration" binding:"max=100"`
}

// CreatePrescriptionRequest represents a request to write a prescription
type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID               `json:"patient_id" binding:"required"`
	DoctorName   string                  `json:"doctor_name" binding:"required,min=1,max=200"`
	PrescribedAt *time.Time              `json:"prescribed_at"`
	Lines        []PrescriptionLineInput `json:"lines" binding:"required,min=1,dive"`
	Notes        string                  `json:"notes" binding:"max=2000"`
}

// UpdatePrescriptionRequest represents a request to update header fields
type UpdatePrescriptionRequest struct {
	DoctorName   string     `json:"doctor_name" binding:"required,min=1,max=200"`
	PrescribedAt *time.Time `json:"prescribed_at"`
	Notes        string     `json:"notes" binding:"max=2000"`
}

// PrescriptionLineResponse represents one medicine line in API responses
type PrescriptionLineResponse struct {
	ID       uuid.UUID `json:"id"`
	Medicine string    `json:"medicine"`
	Dosage   string    `json:"dosage"`
	Duration string    `json:"duration"`
}

// PrescriptionResponse represents a prescription in API responses
type PrescriptionResponse struct {
	ID           uuid.UUID                  `json:"id"`
	PatientID    uuid.UUID                  `json:"patient_id"`
	PatientName  string                     `json:"patient_name,omitempty"`
	DoctorName   string                     `json:"doctor_name"`
	Lines        []PrescriptionLineResponse `json:"lines"`
	PrescribedAt time.Time                  `json:"prescribed_at"`
	Notes        string                     `json:"notes"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// ToPrescriptionResponse converts a prescription to its API representation
func ToPrescriptionResponse(p *clinical.Prescription, patientName string) PrescriptionResponse {
	lines := make([]PrescriptionLineResponse, 0, len(p.Lines))
	for _, line := range p.Lines {
		lines = append(lines, PrescriptionLineResponse{
			ID:       line.ID,
			Medicine: line.Medicine,
			Dosage:   line.Dosage,
			Duration: line.Duration,
		})
	}
	return PrescriptionResponse{
		ID:           p.ID,
		PatientID:    p.PatientID,
		PatientName:  patientName,
		DoctorName:   p.DoctorName,
		Lines:        lines,
		PrescribedAt: p.PrescribedAt,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PrescriptionSource feeds prescriptions to the listing controller
func PrescriptionSource() listing.Source[clinical.Prescription] {
	return listing.Source[clinical.Prescription]{
		SearchFields: func(p clinical.Prescription) []string {
			fields := []string{p.DoctorName}
			for _, line := range p.Lines {
				fields = append(fields, line.Medicine)
			}
			return fields
		},
		Timestamp: func(p clinical.Prescription) time.Time { return p.PrescribedAt },
	}
}

// CreateReportRequest represents a request to open an investigation report
type CreateReportRequest struct {
	PatientID   uuid.UUID  `json:"patient_id" binding:"required"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Title       string     `json:"title" binding:"required,min=1,max=300"`
	Description string     `json:"description" binding:"max=2000"`
	ReportDate  *time.Time `json:"report_date"`
	Attachment  string     `json:"attachment" binding:"max=500"`
}

// UpdateReportRequest represents a request to update a report
type UpdateReportRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Title       string     `json:"title" binding:"required,min=1,max=300"`
	Description string     `json:"description" binding:"max=2000"`
	ReportDate  *time.Time `json:"report_date"`
	Attachment  string     `json:"attachment" binding:"max=500"`
	Complete    bool       `json:"complete"`
}

// ReportResponse represents an investigation report in API responses
type ReportResponse struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PatientName    string     `json:"patient_name,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ReportDate     time.Time  `json:"report_date"`
	Status         string     `json:"status"`
	AttachmentPath string     `json:"attachment_path"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToReportResponse converts a report to its API representation
func ToReportResponse(r *clinical.InvestigationReport, patientName string) ReportResponse {
	return ReportResponse{
		ID:             r.ID,
		PatientID:      r.PatientID,
		PatientName:    patientName,
		CategoryID:     r.CategoryID,
		Title:          r.Title,
		Description:    r.Description,
		ReportDate:     r.ReportDate,
		Status:         string(r.Status),
		AttachmentPath: r.AttachmentPath,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ReportSource feeds investigation reports to the listing controller
func ReportSource() listing.Source[clinical.InvestigationReport] {
	return listing.Source[clinical.InvestigationReport]{
		SearchFields: func(r clinical.InvestigationReport) []string {
			return []string{r.Title, r.Description}
		},
		Timestamp: func(r clinical.InvestigationReport) time.Time { return r.ReportDate },
		Status:    func(r clinical.InvestigationReport) string { return string(r.Status) },
	}
}
