package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by its ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.StaffMember, error) {
	var member staff.StaffMember
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindByEmail finds a staff member by email
func (r *GormStaffRepository) FindByEmail(ctx context.Context, email string) (*staff.StaffMember, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var member staff.StaffMember
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindAll finds all staff members matching the filter
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]staff.StaffMember, error) {
	var members []staff.StaffMember
	query := applyFilter(r.db.WithContext(ctx).Model(&staff.StaffMember{}), filter, StaffSortFields)

	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByRole finds staff members with the given role
func (r *GormStaffRepository) FindByRole(ctx context.Context, role staff.Role, filter shared.Filter) ([]staff.StaffMember, error) {
	var members []staff.StaffMember
	query := applyFilter(
		r.db.WithContext(ctx).Model(&staff.StaffMember{}).Where("role = ?", role),
		filter,
		StaffSortFields,
	)

	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByIDs finds multiple staff members by their IDs
func (r *GormStaffRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]staff.StaffMember, error) {
	if len(ids) == 0 {
		return []staff.StaffMember{}, nil
	}

	var members []staff.StaffMember
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountByRole counts staff members with the given role
func (r *GormStaffRepository) CountByRole(ctx context.Context, role staff.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&staff.StaffMember{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, member *staff.StaffMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete deletes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&staff.StaffMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts staff members matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&staff.StaffMember{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStaffRepository implements StaffRepository
var _ staff.StaffRepository = (*GormStaffRepository)(nil)
