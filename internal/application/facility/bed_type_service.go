package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/shared"
)

// BedTypeService handles bed type business operations
type BedTypeService struct {
	bedTypeRepo facility.BedTypeRepository
	bedRepo     facility.BedRepository
}

// NewBedTypeService creates a new BedTypeService
func NewBedTypeService(bedTypeRepo facility.BedTypeRepository, bedRepo facility.BedRepository) *BedTypeService {
	return &BedTypeService{
		bedTypeRepo: bedTypeRepo,
		bedRepo:     bedRepo,
	}
}

// Create creates a new bed type
func (s *BedTypeService) Create(ctx context.Context, req CreateBedTypeRequest) (*BedTypeResponse, error) {
	exists, err := s.bedTypeRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bed type with this name already exists")
	}

	bedType, err := facility.NewBedType(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.bedTypeRepo.Save(ctx, bedType); err != nil {
		return nil, err
	}

	response := ToBedTypeResponse(bedType)
	return &response, nil
}

// GetByID retrieves a bed type by ID
func (s *BedTypeService) GetByID(ctx context.Context, id uuid.UUID) (*BedTypeResponse, error) {
	bedType, err := s.bedTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBedTypeResponse(bedType)
	return &response, nil
}

// List returns one page of bed types after in-memory filtering
func (s *BedTypeService) List(ctx context.Context, q query.ListQuery) (*query.Result[BedTypeResponse], error) {
	records, err := s.bedTypeRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, BedTypeSource(), q)

	items := make([]BedTypeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToBedTypeResponse(&result.Items[i]))
	}
	return &query.Result[BedTypeResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *BedTypeService) Filtered(ctx context.Context, q query.ListQuery) ([]facility.BedType, error) {
	records, err := s.bedTypeRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, BedTypeSource(), q), nil
}

// Update updates a bed type
func (s *BedTypeService) Update(ctx context.Context, id uuid.UUID, req UpdateBedTypeRequest) (*BedTypeResponse, error) {
	bedType, err := s.bedTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bedType.Name != req.Name {
		exists, err := s.bedTypeRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Bed type with this name already exists")
		}
	}
	if err := bedType.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.bedTypeRepo.Save(ctx, bedType); err != nil {
		return nil, err
	}

	response := ToBedTypeResponse(bedType)
	return &response, nil
}

// Delete removes a bed type. A type still referenced by beds cannot go.
func (s *BedTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bedTypeRepo.FindByID(ctx, id); err != nil {
		return err
	}

	filter := shared.DefaultFilter()
	filter.Filters["bed_type_id"] = id
	count, err := s.bedRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Bed type is still assigned to beds")
	}
	return s.bedTypeRepo.Delete(ctx, id)
}
