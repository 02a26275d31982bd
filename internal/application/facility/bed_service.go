package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/shared"
)

// LabelResolver resolves display names for referenced aggregates, backed by
// the lookup cache with a repository fallback
type LabelResolver interface {
	Label(ctx context.Context, kind string, id uuid.UUID) string
}

// BedService handles bed business operations
type BedService struct {
	bedRepo     facility.BedRepository
	bedTypeRepo facility.BedTypeRepository
	labels      LabelResolver
}

// NewBedService creates a new BedService
func NewBedService(bedRepo facility.BedRepository, bedTypeRepo facility.BedTypeRepository) *BedService {
	return &BedService{
		bedRepo:     bedRepo,
		bedTypeRepo: bedTypeRepo,
	}
}

// SetLabelResolver wires the lookup cache for bed type display names
func (s *BedService) SetLabelResolver(labels LabelResolver) {
	s.labels = labels
}

func (s *BedService) bedTypeName(ctx context.Context, id uuid.UUID) string {
	if s.labels != nil {
		if name := s.labels.Label(ctx, "bed_type", id); name != "" {
			return name
		}
	}
	bedType, err := s.bedTypeRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return bedType.Name
}

// Create creates a new bed
func (s *BedService) Create(ctx context.Context, req CreateBedRequest) (*BedResponse, error) {
	exists, err := s.bedRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bed with this number already exists")
	}
	if _, err := s.bedTypeRepo.FindByID(ctx, req.BedTypeID); err != nil {
		return nil, shared.NewDomainError("INVALID_BED_TYPE", "Bed type not found")
	}

	bed, err := facility.NewBed(req.Number, req.BedTypeID, req.ChargePerDay)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := bed.Update(req.Number, req.BedTypeID, req.ChargePerDay, req.Description); err != nil {
			return nil, err
		}
	}
	if err := s.bedRepo.Save(ctx, bed); err != nil {
		return nil, err
	}

	response := ToBedResponse(bed, s.bedTypeName(ctx, bed.BedTypeID))
	return &response, nil
}

// GetByID retrieves a bed by ID
func (s *BedService) GetByID(ctx context.Context, id uuid.UUID) (*BedResponse, error) {
	bed, err := s.bedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBedResponse(bed, s.bedTypeName(ctx, bed.BedTypeID))
	return &response, nil
}

// List returns one page of beds after in-memory filtering
func (s *BedService) List(ctx context.Context, q query.ListQuery) (*query.Result[BedResponse], error) {
	records, err := s.bedRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, BedSource(), q)

	items := make([]BedResponse, 0, len(result.Items))
	for i := range result.Items {
		bed := &result.Items[i]
		items = append(items, ToBedResponse(bed, s.bedTypeName(ctx, bed.BedTypeID)))
	}
	return &query.Result[BedResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *BedService) Filtered(ctx context.Context, q query.ListQuery) ([]facility.Bed, error) {
	records, err := s.bedRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, BedSource(), q), nil
}

// Update updates a bed
func (s *BedService) Update(ctx context.Context, id uuid.UUID, req UpdateBedRequest) (*BedResponse, error) {
	bed, err := s.bedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bed.Number != req.Number {
		exists, err := s.bedRepo.ExistsByNumber(ctx, req.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Bed with this number already exists")
		}
	}
	if _, err := s.bedTypeRepo.FindByID(ctx, req.BedTypeID); err != nil {
		return nil, shared.NewDomainError("INVALID_BED_TYPE", "Bed type not found")
	}
	if err := bed.Update(req.Number, req.BedTypeID, req.ChargePerDay, req.Description); err != nil {
		return nil, err
	}
	if err := s.bedRepo.Save(ctx, bed); err != nil {
		return nil, err
	}

	response := ToBedResponse(bed, s.bedTypeName(ctx, bed.BedTypeID))
	return &response, nil
}

// Delete removes a bed. An occupied bed cannot go.
func (s *BedService) Delete(ctx context.Context, id uuid.UUID) error {
	bed, err := s.bedRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !bed.Available {
		return shared.NewDomainError("BED_OCCUPIED", "Occupied beds cannot be deleted")
	}
	return s.bedRepo.Delete(ctx, id)
}
