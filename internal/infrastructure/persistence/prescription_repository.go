package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPrescriptionRepository implements PrescriptionRepository using GORM
type GormPrescriptionRepository struct {
	db *gorm.DB
}

// NewGormPrescriptionRepository creates a new GormPrescriptionRepository
func NewGormPrescriptionRepository(db *gorm.DB) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{db: db}
}

// FindByID finds a prescription by its ID, including its lines
func (r *GormPrescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinical.Prescription, error) {
	var prescription clinical.Prescription
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&prescription, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &prescription, nil
}

// FindAll finds all prescriptions matching the filter, including their lines
func (r *GormPrescriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]clinical.Prescription, error) {
	var prescriptions []clinical.Prescription
	query := applyFilter(r.db.WithContext(ctx).Model(&clinical.Prescription{}), filter, PrescriptionSortFields)

	if err := query.Preload("Lines").Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// FindByPatient finds all prescriptions for a patient, newest first
func (r *GormPrescriptionRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]clinical.Prescription, error) {
	var prescriptions []clinical.Prescription
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Preload("Lines").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// Save creates or updates a prescription together with its lines
func (r *GormPrescriptionRepository) Save(ctx context.Context, prescription *clinical.Prescription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(prescription.Lines))
		for _, line := range prescription.Lines {
			keep = append(keep, line.ID)
		}

		orphans := tx.Where("prescription_id = ?", prescription.ID)
		if len(keep) > 0 {
			orphans = orphans.Where("id NOT IN ?", keep)
		}
		if err := orphans.Delete(&clinical.PrescriptionLine{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(prescription).Error
	})
}

// Delete deletes a prescription and its lines
func (r *GormPrescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prescription_id = ?", id).Delete(&clinical.PrescriptionLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&clinical.Prescription{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts prescriptions matching the filter
func (r *GormPrescriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFieldFilters(r.db.WithContext(ctx).Model(&clinical.Prescription{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPrescriptionRepository implements PrescriptionRepository
var _ clinical.PrescriptionRepository = (*GormPrescriptionRepository)(nil)
