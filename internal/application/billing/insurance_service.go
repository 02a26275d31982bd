package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/billing"
	"github.com/hms/backend/internal/domain/shared"
)

// InsuranceService handles insurance plans and their covered service lines
type InsuranceService struct {
	insuranceRepo billing.InsuranceRepository
}

// NewInsuranceService creates a new InsuranceService
func NewInsuranceService(insuranceRepo billing.InsuranceRepository) *InsuranceService {
	return &InsuranceService{insuranceRepo: insuranceRepo}
}

// Create creates an insurance plan with its service lines
func (s *InsuranceService) Create(ctx context.Context, req CreateInsuranceRequest) (*InsuranceResponse, error) {
	exists, err := s.insuranceRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Insurance plan with this name already exists")
	}

	ins, err := billing.NewInsurance(req.Name, req.ProviderName)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Items {
		_, err := ins.AddItem(input.Name, billing.LineInput{
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
		if err := ins.SetDiscount(*req.Discount, discountType); err != nil {
			return nil, err
		}
	}

	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// GetByID retrieves an insurance plan by ID
func (s *InsuranceService) GetByID(ctx context.Context, id uuid.UUID) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// List returns one page of insurance plans after in-memory filtering
func (s *InsuranceService) List(ctx context.Context, q query.ListQuery) (*query.Result[InsuranceResponse], error) {
	records, err := s.insuranceRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, InsuranceSource(), q)

	items := make([]InsuranceResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToInsuranceResponse(&result.Items[i]))
	}
	return &query.Result[InsuranceResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *InsuranceService) Filtered(ctx context.Context, q query.ListQuery) ([]billing.Insurance, error) {
	records, err := s.insuranceRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, InsuranceSource(), q), nil
}

// Update renames a plan and toggles its status
func (s *InsuranceService) Update(ctx context.Context, id uuid.UUID, req UpdateInsuranceRequest) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ins.Name != req.Name {
		exists, err := s.insuranceRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Insurance plan with this name already exists")
		}
		if err := ins.Rename(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			ins.Activate()
		} else {
			ins.Deactivate()
		}
	}

	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// AddItem adds a service line to a plan
func (s *InsuranceService) AddItem(ctx context.Context, id uuid.UUID, req LineItemInput) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = ins.AddItem(req.Name, billing.LineInput{
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		TaxPercent: req.TaxPercent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// UpdateItem changes one line's inputs; totals cascade
func (s *InsuranceService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateLineItemRequest) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = ins.UpdateItem(itemID, billing.LineInput{
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		TaxPercent: req.TaxPercent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// RemoveItem drops one line; totals cascade
func (s *InsuranceService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ins.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// SetDiscount changes the plan-level discount
func (s *InsuranceService) SetDiscount(ctx context.Context, id uuid.UUID, req SetDiscountRequest) (*InsuranceResponse, error) {
	ins, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ins.SetDiscount(req.Discount, billing.DiscountType(req.DiscountType)); err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Save(ctx, ins); err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(ins)
	return &response, nil
}

// Delete removes an insurance plan
func (s *InsuranceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.insuranceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.insuranceRepo.Delete(ctx, id)
}
