package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdmissionRepository implements AdmissionRepository using GORM
type GormAdmissionRepository struct {
	db *gorm.DB
}

// NewGormAdmissionRepository creates a new GormAdmissionRepository
func NewGormAdmissionRepository(db *gorm.DB) *GormAdmissionRepository {
	return &GormAdmissionRepository{db: db}
}

// FindByID finds an admission by its ID
func (r *GormAdmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Admission, error) {
	var admission patient.Admission
	if err := r.db.WithContext(ctx).First(&admission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admission, nil
}

// FindAll finds all admissions matching the filter
func (r *GormAdmissionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Admission, error) {
	var admissions []patient.Admission
	query := applyFilter(r.db.WithContext(ctx).Model(&patient.Admission{}), filter, AdmissionSortFields)

	if err := query.Find(&admissions).Error; err != nil {
		return nil, err
	}
	return admissions, nil
}

// FindByKind finds admissions of one kind (IPD or OPD)
func (r *GormAdmissionRepository) FindByKind(ctx context.Context, kind patient.AdmissionKind, filter shared.Filter) ([]patient.Admission, error) {
	var admissions []patient.Admission
	query := applyFilter(
		r.db.WithContext(ctx).Model(&patient.Admission{}).Where("kind = ?", kind),
		filter,
		AdmissionSortFields,
	)

	if err := query.Find(&admissions).Error; err != nil {
		return nil, err
	}
	return admissions, nil
}

// CountAdmittedSince counts admissions made at or after the given time
func (r *GormAdmissionRepository) CountAdmittedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&patient.Admission{}).
		Where("admitted_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an admission
func (r *GormAdmissionRepository) Save(ctx context.Context, admission *patient.Admission) error {
	return r.db.WithContext(ctx).Save(admission).Error
}

// Delete deletes an admission
func (r *GormAdmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&patient.Admission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts admissions matching the filter
func (r *GormAdmissionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&patient.Admission{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAdmissionRepository implements AdmissionRepository
var _ patient.AdmissionRepository = (*GormAdmissionRepository)(nil)
