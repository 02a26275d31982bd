package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTreatmentPackageRepository implements TreatmentPackageRepository using GORM
type GormTreatmentPackageRepository struct {
	db *gorm.DB
}

// NewGormTreatmentPackageRepository creates a new GormTreatmentPackageRepository
func NewGormTreatmentPackageRepository(db *gorm.DB) *GormTreatmentPackageRepository {
	return &GormTreatmentPackageRepository{db: db}
}

// FindByID finds a treatment package by its ID, including its items
func (r *GormTreatmentPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.TreatmentPackage, error) {
	var pkg billing.TreatmentPackage
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&pkg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// FindAll finds all treatment packages matching the filter, including their items
func (r *GormTreatmentPackageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.TreatmentPackage, error) {
	var pkgs []billing.TreatmentPackage
	query := applyFilter(r.db.WithContext(ctx).Model(&billing.TreatmentPackage{}), filter, PackageSortFields)

	if err := query.Preload("Items").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// Save creates or updates a treatment package together with its items
func (r *GormTreatmentPackageRepository) Save(ctx context.Context, pkg *billing.TreatmentPackage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(pkg.Items))
		for _, item := range pkg.Items {
			keep = append(keep, item.ID)
		}

		orphans := tx.Where("package_id = ?", pkg.ID)
		if len(keep) > 0 {
			orphans = orphans.Where("id NOT IN ?", keep)
		}
		if err := orphans.Delete(&billing.PackageItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(pkg).Error
	})
}

// Delete deletes a treatment package and its items
func (r *GormTreatmentPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&billing.PackageItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.TreatmentPackage{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts treatment packages matching the filter
func (r *GormTreatmentPackageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&billing.TreatmentPackage{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a treatment package with the given name exists
func (r *GormTreatmentPackageRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.TreatmentPackage{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormTreatmentPackageRepository implements TreatmentPackageRepository
var _ billing.TreatmentPackageRepository = (*GormTreatmentPackageRepository)(nil)
