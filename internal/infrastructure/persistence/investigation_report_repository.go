package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvestigationReportRepository implements InvestigationReportRepository using GORM
type GormInvestigationReportRepository struct {
	db *gorm.DB
}

// NewGormInvestigationReportRepository creates a new GormInvestigationReportRepository
func NewGormInvestigationReportRepository(db *gorm.DB) *GormInvestigationReportRepository {
	return &GormInvestigationReportRepository{db: db}
}

// FindByID finds an investigation report by its ID
func (r *GormInvestigationReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinical.InvestigationReport, error) {
	var report clinical.InvestigationReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindAll finds all investigation reports matching the filter
func (r *GormInvestigationReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]clinical.InvestigationReport, error) {
	var reports []clinical.InvestigationReport
	query := applyFilter(r.db.WithContext(ctx).Model(&clinical.InvestigationReport{}), filter, ReportSortFields)

	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// FindByPatient finds all investigation reports for a patient, newest first
func (r *GormInvestigationReportRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]clinical.InvestigationReport, error) {
	var reports []clinical.InvestigationReport
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Save creates or updates an investigation report
func (r *GormInvestigationReportRepository) Save(ctx context.Context, report *clinical.InvestigationReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete deletes an investigation report
func (r *GormInvestigationReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&clinical.InvestigationReport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts investigation reports matching the filter
func (r *GormInvestigationReportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&clinical.InvestigationReport{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInvestigationReportRepository implements InvestigationReportRepository
var _ clinical.InvestigationReportRepository = (*GormInvestigationReportRepository)(nil)
