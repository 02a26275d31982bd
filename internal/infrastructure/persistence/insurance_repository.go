package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInsuranceRepository implements InsuranceRepository using GORM
type GormInsuranceRepository struct {
	db *gorm.DB
}

// NewGormInsuranceRepository creates a new GormInsuranceRepository
func NewGormInsuranceRepository(db *gorm.DB) *GormInsuranceRepository {
	return &GormInsuranceRepository{db: db}
}

// FindByID finds an insurance by its ID, including its items
func (r *GormInsuranceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Insurance, error) {
	var insurance billing.Insurance
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&insurance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &insurance, nil
}

// FindAll finds all insurances matching the filter, including their items
func (r *GormInsuranceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Insurance, error) {
	var insurances []billing.Insurance
	query := applyFilter(r.db.WithContext(ctx).Model(&billing.Insurance{}), filter, InsuranceSortFields)

	if err := query.Preload("Items").Find(&insurances).Error; err != nil {
		return nil, err
	}
	return insurances, nil
}

// Save creates or updates an insurance together with its items
func (r *GormInsuranceRepository) Save(ctx context.Context, insurance *billing.Insurance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(insurance.Items))
		for _, item := range insurance.Items {
			keep = append(keep, item.ID)
		}

		orphans := tx.Where("insurance_id = ?", insurance.ID)
		if len(keep) > 0 {
			orphans = orphans.Where("id NOT IN ?", keep)
		}
		if err := orphans.Delete(&billing.InsuranceItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(insurance).Error
	})
}

// Delete deletes an insurance and its items
func (r *GormInsuranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("insurance_id = ?", id).Delete(&billing.InsuranceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Insurance{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts insurances matching the filter
func (r *GormInsuranceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&billing.Insurance{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if an insurance with the given name exists
func (r *GormInsuranceRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Insurance{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormInsuranceRepository implements InsuranceRepository
var _ billing.InsuranceRepository = (*GormInsuranceRepository)(nil)
