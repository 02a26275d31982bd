package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMedicineRepository implements MedicineRepository using GORM
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewGormMedicineRepository creates a new GormMedicineRepository
func NewGormMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

// FindByID finds a medicine by its ID
func (r *GormMedicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*pharmacy.Medicine, error) {
	var medicine pharmacy.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// FindAll finds all medicines matching the filter
func (r *GormMedicineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pharmacy.Medicine, error) {
	var medicines []pharmacy.Medicine
	query := applyFilter(r.db.WithContext(ctx).Model(&pharmacy.Medicine{}), filter, MedicineSortFields)

	if err := query.Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// FindByIDs finds multiple medicines by their IDs
func (r *GormMedicineRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]pharmacy.Medicine, error) {
	if len(ids) == 0 {
		return []pharmacy.Medicine{}, nil
	}

	var medicines []pharmacy.Medicine
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// CountOutOfStock counts medicines whose stock has run out
func (r *GormMedicineRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pharmacy.Medicine{}).
		Where("stock_qty <= 0").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a medicine
func (r *GormMedicineRepository) Save(ctx context.Context, medicine *pharmacy.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

// Delete deletes a medicine
func (r *GormMedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pharmacy.Medicine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts medicines matching the filter
func (r *GormMedicineRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&pharmacy.Medicine{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMedicineRepository implements MedicineRepository
var _ pharmacy.MedicineRepository = (*GormMedicineRepository)(nil)
