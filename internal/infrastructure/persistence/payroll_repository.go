package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
	"gorm.io/gorm"
)

// GormPayrollRepository implements PayrollRepository using GORM
type GormPayrollRepository struct {
	db *gorm.DB
}

// NewGormPayrollRepository creates a new GormPayrollRepository
func NewGormPayrollRepository(db *gorm.DB) *GormPayrollRepository {
	return &GormPayrollRepository{db: db}
}

// FindByID finds a payroll by its ID
func (r *GormPayrollRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Payroll, error) {
	var payroll staff.Payroll
	if err := r.db.WithContext(ctx).First(&payroll, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payroll, nil
}

// FindAll finds all payrolls matching the filter
func (r *GormPayrollRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.Payroll, error) {
	var payrolls []staff.Payroll
	query := applyFilter(r.db.WithContext(ctx).Model(&staff.Payroll{}), filter, PayrollSortFields)

	if err := query.Find(&payrolls).Error; err != nil {
		return nil, err
	}
	return payrolls, nil
}

// FindByStaff finds all payrolls for a staff member, newest period first
func (r *GormPayrollRepository) FindByStaff(ctx context.Context, staffID uuid.UUID) ([]staff.Payroll, error) {
	var payrolls []staff.Payroll
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("year DESC, month DESC").
		Find(&payrolls).Error; err != nil {
		return nil, err
	}
	return payrolls, nil
}

// ExistsForPeriod checks if a payroll already exists for a staff member's month
func (r *GormPayrollRepository) ExistsForPeriod(ctx context.Context, staffID uuid.UUID, month, year int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&staff.Payroll{}).
		Where("staff_id = ? AND month = ? AND year = ?", staffID, month, year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a payroll
func (r *GormPayrollRepository) Save(ctx context.Context, payroll *staff.Payroll) error {
	return r.db.WithContext(ctx).Save(payroll).Error
}

// Delete deletes a payroll
func (r *GormPayrollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&staff.Payroll{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts payrolls matching the filter
func (r *GormPayrollRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&staff.Payroll{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPayrollRepository implements PayrollRepository
var _ staff.PayrollRepository = (*GormPayrollRepository)(nil)
