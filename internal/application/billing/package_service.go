package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/shared"
)

// PackageService handles treatment packages
type PackageService struct {
	packageRepo billing.TreatmentPackageRepository
}

// NewPackageService creates a new PackageService
func NewPackageService(packageRepo billing.TreatmentPackageRepository) *PackageService {
	return &PackageService{packageRepo: packageRepo}
}

// Create creates a treatment package with its lines
func (s *PackageService) Create(ctx context.Context, req CreatePackageRequest) (*PackageResponse, error) {
	exists, err := s.packageRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Package with this name already exists")
	}

	pkg, err := billing.NewTreatmentPackage(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Items {
		_, err := pkg.AddItem(input.Name, billing.LineInput{
			UnitPrice:  input.UnitPrice,
			Quantity:   input.Quantity,
			TaxPercent: input.TaxPercent,
		})
		if err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		discountType := billing.DiscountTypeFixed
		if req.DiscountType != "" {
			discountType = billing.DiscountType(req.DiscountType)
		}
		if err := pkg.SetDiscount(*req.Discount, discountType); err != nil {
			return nil, err
		}
	}

	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// GetByID retrieves a package by ID
func (s *PackageService) GetByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// List returns one page of packages after in-memory filtering
func (s *PackageService) List(ctx context.Context, q query.ListQuery) (*query.Result[PackageResponse], error) {
	records, err := s.packageRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, PackageSource(), q)

	items := make([]PackageResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToPackageResponse(&result.Items[i]))
	}
	return &query.Result[PackageResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *PackageService) Filtered(ctx context.Context, q query.ListQuery) ([]billing.TreatmentPackage, error) {
	records, err := s.packageRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, PackageSource(), q), nil
}

// Update changes the package's basic information
func (s *PackageService) Update(ctx context.Context, id uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.Name != req.Name {
		exists, err := s.packageRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Package with this name already exists")
		}
	}
	if err := pkg.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// AddItem adds a treatment line to a package
func (s *PackageService) AddItem(ctx context.Context, id uuid.UUID, req LineItemInput) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = pkg.AddItem(req.Name, billing.LineInput{
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		TaxPercent: req.TaxPercent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// UpdateItem changes one line's inputs; totals cascade
func (s *PackageService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateLineItemRequest) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = pkg.UpdateItem(itemID, billing.LineInput{
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		TaxPercent: req.TaxPercent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// RemoveItem drops one line; totals cascade
func (s *PackageService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pkg.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// SetDiscount changes the package-level discount
func (s *PackageService) SetDiscount(ctx context.Context, id uuid.UUID, req SetDiscountRequest) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pkg.SetDiscount(req.Discount, billing.DiscountType(req.DiscountType)); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := ToPackageResponse(pkg)
	return &response, nil
}

// Delete removes a treatment package
func (s *PackageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.packageRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.packageRepo.Delete(ctx, id)
}
