package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBedRepository implements BedRepository using GORM
type GormBedRepository struct {
	db *gorm.DB
}

// NewGormBedRepository creates a new GormBedRepository
func NewGormBedRepository(db *gorm.DB) *GormBedRepository {
	return &GormBedRepository{db: db}
}

// FindByID finds a bed by its ID
func (r *GormBedRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Bed, error) {
	var bed facility.Bed
	if err := r.db.WithContext(ctx).First(&bed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bed, nil
}

// FindAll finds all beds matching the filter
func (r *GormBedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]facility.Bed, error) {
	var beds []facility.Bed
	query := applyFilter(r.db.WithContext(ctx).Model(&facility.Bed{}), filter, BedSortFields)

	if err := query.Find(&beds).Error; err != nil {
		return nil, err
	}
	return beds, nil
}

// Save creates or updates a bed
func (r *GormBedRepository) Save(ctx context.Context, bed *facility.Bed) error {
	return r.db.WithContext(ctx).Save(bed).Error
}

// Delete deletes a bed
func (r *GormBedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&facility.Bed{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts beds matching the filter
func (r *GormBedRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&facility.Bed{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a bed with the given number exists
func (r *GormBedRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&facility.Bed{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountAvailable counts beds that are not occupied
func (r *GormBedRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&facility.Bed{}).
		Where("available = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBedRepository implements BedRepository
var _ facility.BedRepository = (*GormBedRepository)(nil)
