package pharmacy

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
)

// MedicineService handles the pharmacy inventory
type MedicineService struct {
	medicineRepo pharmacy.MedicineRepository
}

// NewMedicineService creates a new MedicineService
func NewMedicineService(medicineRepo pharmacy.MedicineRepository) *MedicineService {
	return &MedicineService{medicineRepo: medicineRepo}
}

// Create adds a medicine to the inventory
func (s *MedicineService) Create(ctx context.Context, req CreateMedicineRequest) (*MedicineResponse, error) {
	medicine, err := pharmacy.NewMedicine(req.Name, req.Brand, req.Category, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if req.ExpiryDate != nil {
		medicine.SetExpiry(req.ExpiryDate)
	}
	if req.Description != "" {
		if err := medicine.Update(req.Name, req.Brand, req.Category, req.SellingPrice, req.Description); err != nil {
			return nil, err
		}
	}
	if err := s.medicineRepo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	response := ToMedicineResponse(medicine)
	return &response, nil
}

// GetByID retrieves a medicine by ID
func (s *MedicineService) GetByID(ctx context.Context, id uuid.UUID) (*MedicineResponse, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMedicineResponse(medicine)
	return &response, nil
}

// List returns one page of medicines after in-memory filtering
func (s *MedicineService) List(ctx context.Context, q query.ListQuery) (*query.Result[MedicineResponse], error) {
	records, err := s.medicineRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, MedicineSource(), q)

	items := make([]MedicineResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToMedicineResponse(&result.Items[i]))
	}
	return &query.Result[MedicineResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *MedicineService) Filtered(ctx context.Context, q query.ListQuery) ([]pharmacy.Medicine, error) {
	records, err := s.medicineRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, MedicineSource(), q), nil
}

// Update updates a medicine
func (s *MedicineService) Update(ctx context.Context, id uuid.UUID, req UpdateMedicineRequest) (*MedicineResponse, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := medicine.Update(req.Name, req.Brand, req.Category, req.SellingPrice, req.Description); err != nil {
		return nil, err
	}
	medicine.SetExpiry(req.ExpiryDate)

	if err := s.medicineRepo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	response := ToMedicineResponse(medicine)
	return &response, nil
}

// AdjustStock applies a manual stock correction; positive adds, negative
// removes
func (s *MedicineService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*MedicineResponse, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Quantity >= 0 {
		err = medicine.AddStock(req.Quantity)
	} else {
		err = medicine.RemoveStock(-req.Quantity)
	}
	if err != nil {
		return nil, err
	}
	if err := s.medicineRepo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	response := ToMedicineResponse(medicine)
	return &response, nil
}

// Delete removes a medicine from the inventory
func (s *MedicineService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.medicineRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.medicineRepo.Delete(ctx, id)
}
