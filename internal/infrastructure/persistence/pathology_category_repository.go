package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPathologyCategoryRepository implements PathologyCategoryRepository using GORM
type GormPathologyCategoryRepository struct {
	db *gorm.DB
}

// NewGormPathologyCategoryRepository creates a new GormPathologyCategoryRepository
func NewGormPathologyCategoryRepository(db *gorm.DB) *GormPathologyCategoryRepository {
	return &GormPathologyCategoryRepository{db: db}
}

// FindByID finds a pathology category by its ID
func (r *GormPathologyCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinical.PathologyCategory, error) {
	var category clinical.PathologyCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all pathology categories matching the filter
func (r *GormPathologyCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]clinical.PathologyCategory, error) {
	var categories []clinical.PathologyCategory
	query := applyFilter(r.db.WithContext(ctx).Model(&clinical.PathologyCategory{}), filter, PathologyCategorySortFields)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a pathology category
func (r *GormPathologyCategoryRepository) Save(ctx context.Context, category *clinical.PathologyCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a pathology category
func (r *GormPathologyCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&clinical.PathologyCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts pathology categories matching the filter
func (r *GormPathologyCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&clinical.PathologyCategory{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a pathology category with the given name exists
func (r *GormPathologyCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&clinical.PathologyCategory{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPathologyCategoryRepository implements PathologyCategoryRepository
var _ clinical.PathologyCategoryRepository = (*GormPathologyCategoryRepository)(nil)
