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

// AttachmentRemover deletes stored report attachments
type AttachmentRemover interface {
	Remove(ctx context.Context, path string) error
}

// ReportService handles investigation reports
type ReportService struct {
	reportRepo   clinical.InvestigationReportRepository
	categoryRepo clinical.PathologyCategoryRepository
	patientRepo  patient.PatientRepository
	attachments  AttachmentRemover
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo clinical.InvestigationReportRepository,
	categoryRepo clinical.PathologyCategoryRepository,
	patientRepo patient.PatientRepository,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
		patientRepo:  patientRepo,
	}
}

// SetAttachmentRemover wires the image store for attachment cleanup
func (s *ReportService) SetAttachmentRemover(attachments AttachmentRemover) {
	s.attachments = attachments
}

func (s *ReportService) patientName(ctx context.Context, id uuid.UUID) string {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return p.FullName()
}

func (s *ReportService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Pathology category not found")
	}
	return nil
}

// Create opens an investigation report
func (s *ReportService) Create(ctx context.Context, req CreateReportRequest) (*ReportResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	reportDate := time.Now()
	if req.ReportDate != nil {
		reportDate = *req.ReportDate
	}
	report, err := clinical.NewInvestigationReport(req.PatientID, req.Title, reportDate)
	if err != nil {
		return nil, err
	}
	if err := report.Update(req.Title, req.Description, reportDate, req.CategoryID); err != nil {
		return nil, err
	}
	if req.Attachment != "" {
		if err := report.AttachFile(req.Attachment); err != nil {
			return nil, err
		}
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}
	response := ToReportResponse(report, p.FullName())
	return &response, nil
}

// GetByID retrieves a report by ID
func (s *ReportService) GetByID(ctx context.Context, id uuid.UUID) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReportResponse(report, s.patientName(ctx, report.PatientID))
	return &response, nil
}

// List returns one page of reports after in-memory filtering
func (s *ReportService) List(ctx context.Context, q query.ListQuery) (*query.Result[ReportResponse], error) {
	records, err := s.reportRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, ReportSource(), q)

	items := make([]ReportResponse, 0, len(result.Items))
	for i := range result.Items {
		r := &result.Items[i]
		items = append(items, ToReportResponse(r, s.patientName(ctx, r.PatientID)))
	}
	return &query.Result[ReportResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *ReportService) Filtered(ctx context.Context, q query.ListQuery) ([]clinical.InvestigationReport, error) {
	records, err := s.reportRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, ReportSource(), q), nil
}

// Update updates a report; a replaced attachment is removed from storage
func (s *ReportService) Update(ctx context.Context, id uuid.UUID, req UpdateReportRequest) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	reportDate := time.Time{}
	if req.ReportDate != nil {
		reportDate = *req.ReportDate
	}
	if err := report.Update(req.Title, req.Description, reportDate, req.CategoryID); err != nil {
		return nil, err
	}

	oldAttachment := report.AttachmentPath
	if req.Attachment != "" && req.Attachment != oldAttachment {
		if err := report.AttachFile(req.Attachment); err != nil {
			return nil, err
		}
	}
	if req.Complete && report.Status != clinical.ReportStatusCompleted {
		if err := report.Complete(); err != nil {
			return nil, err
		}
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}
	if s.attachments != nil && oldAttachment != "" && report.AttachmentPath != oldAttachment {
		_ = s.attachments.Remove(ctx, oldAttachment)
	}

	response := ToReportResponse(report, s.patientName(ctx, report.PatientID))
	return &response, nil
}

// Delete removes a report and its stored attachment
func (s *ReportService) Delete(ctx context.Context, id uuid.UUID) error {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.attachments != nil && report.AttachmentPath != "" {
		_ = s.attachments.Remove(ctx, report.AttachmentPath)
	}
	return nil
}
