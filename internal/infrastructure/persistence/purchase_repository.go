package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID, including its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*pharmacy.MedicinePurchase, error) {
	var purchase pharmacy.MedicinePurchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter, including their items
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pharmacy.MedicinePurchase, error) {
	var purchases []pharmacy.MedicinePurchase
	query := applyFilter(r.db.WithContext(ctx).Model(&pharmacy.MedicinePurchase{}), filter, PurchaseSortFields)

	if err := query.Preload("Items").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase together with its items. Items removed
// from the aggregate are deleted so the table mirrors the in-memory state.
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *pharmacy.MedicinePurchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(purchase.Items))
		for _, item := range purchase.Items {
			keep = append(keep, item.ID)
		}

		orphans := tx.Where("purchase_id = ?", purchase.ID)
		if len(keep) > 0 {
			orphans = orphans.Where("id NOT IN ?", keep)
		}
		if err := orphans.Delete(&pharmacy.PurchaseItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(purchase).Error
	})
}

// Delete deletes a purchase and its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&pharmacy.PurchaseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&pharmacy.MedicinePurchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&pharmacy.MedicinePurchase{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a purchase with the given number exists
func (r *GormPurchaseRepository) ExistsByNumber(ctx context.Context, purchaseNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pharmacy.MedicinePurchase{}).
		Where("purchase_number = ?", purchaseNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextPurchaseNumber generates the next purchase number.
// Format: MP-YYYY-NNNNN (e.g., MP-2026-00001)
func (r *GormPurchaseRepository) NextPurchaseNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("MP-%d-", year)

	// Get the highest purchase number for this year
	var lastPurchase pharmacy.MedicinePurchase
	err := r.db.WithContext(ctx).
		Model(&pharmacy.MedicinePurchase{}).
		Where("purchase_number LIKE ?", prefix+"%").
		Order("purchase_number DESC").
		First(&lastPurchase).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastPurchase.PurchaseNumber != "" {
		parts := strings.Split(lastPurchase.PurchaseNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ pharmacy.PurchaseRepository = (*GormPurchaseRepository)(nil)
