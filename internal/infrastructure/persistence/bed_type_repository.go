package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBedTypeRepository implements BedTypeRepository using GORM
type GormBedTypeRepository struct {
	db *gorm.DB
}

// NewGormBedTypeRepository creates a new GormBedTypeRepository
func NewGormBedTypeRepository(db *gorm.DB) *GormBedTypeRepository {
	return &GormBedTypeRepository{db: db}
}

// FindByID finds a bed type by its ID
func (r *GormBedTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.BedType, error) {
	var bedType facility.BedType
	if err := r.db.WithContext(ctx).First(&bedType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bedType, nil
}

// FindAll finds all bed types matching the filter
func (r *GormBedTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]facility.BedType, error) {
	var bedTypes []facility.BedType
	query := applyFilter(r.db.WithContext(ctx).Model(&facility.BedType{}), filter, BedTypeSortFields)

	if err := query.Find(&bedTypes).Error; err != nil {
		return nil, err
	}
	return bedTypes, nil
}

// FindByIDs finds multiple bed types by their IDs
func (r *GormBedTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]facility.BedType, error) {
	if len(ids) == 0 {
		return []facility.BedType{}, nil
	}

	var bedTypes []facility.BedType
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&bedTypes).Error; err != nil {
		return nil, err
	}
	return bedTypes, nil
}

// Save creates or updates a bed type
func (r *GormBedTypeRepository) Save(ctx context.Context, bedType *facility.BedType) error {
	return r.db.WithContext(ctx).Save(bedType).Error
}

// Delete deletes a bed type
func (r *GormBedTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&facility.BedType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bed types matching the filter
func (r *GormBedTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&facility.BedType{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a bed type with the given name exists
func (r *GormBedTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&facility.BedType{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBedTypeRepository implements BedTypeRepository
var _ facility.BedTypeRepository = (*GormBedTypeRepository)(nil)
