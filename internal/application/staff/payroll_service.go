package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
)

// PayrollService handles monthly salary records
type PayrollService struct {
	payrollRepo staff.PayrollRepository
	staffRepo   staff.StaffRepository
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(payrollRepo staff.PayrollRepository, staffRepo staff.StaffRepository) *PayrollService {
	return &PayrollService{
		payrollRepo: payrollRepo,
		staffRepo:   staffRepo,
	}
}

func (s *PayrollService) staffName(ctx context.Context, id uuid.UUID) string {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return member.FullName()
}

// Create creates a payroll record; one per staff member per month
func (s *PayrollService) Create(ctx context.Context, req CreatePayrollRequest) (*PayrollResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}

	exists, err := s.payrollRepo.ExistsForPeriod(ctx, req.StaffID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Payroll for this period already exists")
	}

	payroll, err := staff.NewPayroll(req.StaffID, req.Month, req.Year, req.BasicSalary, req.Allowance, req.Deduction)
	if err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Save(ctx, payroll); err != nil {
		return nil, err
	}

	response := ToPayrollResponse(payroll, member.FullName())
	return &response, nil
}

// GetByID retrieves a payroll by ID
func (s *PayrollService) GetByID(ctx context.Context, id uuid.UUID) (*PayrollResponse, error) {
	payroll, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPayrollResponse(payroll, s.staffName(ctx, payroll.StaffID))
	return &response, nil
}

// List returns one page of payrolls after in-memory filtering. Search runs
// over the resolved staff names, so records are mapped before filtering.
func (s *PayrollService) List(ctx context.Context, q query.ListQuery) (*query.Result[PayrollResponse], error) {
	responses, err := s.allResponses(ctx)
	if err != nil {
		return nil, err
	}
	result := query.Run(responses, PayrollSource(), q)
	return &result, nil
}

// Filtered returns the full filtered set for exports
func (s *PayrollService) Filtered(ctx context.Context, q query.ListQuery) ([]PayrollResponse, error) {
	responses, err := s.allResponses(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filtered(responses, PayrollSource(), q), nil
}

func (s *PayrollService) allResponses(ctx context.Context) ([]PayrollResponse, error) {
	records, err := s.payrollRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	responses := make([]PayrollResponse, 0, len(records))
	for i := range records {
		p := &records[i]
		name, ok := names[p.StaffID]
		if !ok {
			name = s.staffName(ctx, p.StaffID)
			names[p.StaffID] = name
		}
		responses = append(responses, ToPayrollResponse(p, name))
	}
	return responses, nil
}

// Update changes an unpaid payroll's components
func (s *PayrollService) Update(ctx context.Context, id uuid.UUID, req UpdatePayrollRequest) (*PayrollResponse, error) {
	payroll, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payroll.Status == staff.PayrollStatusPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Paid payrolls cannot be changed")
	}
	if err := payroll.SetComponents(req.BasicSalary, req.Allowance, req.Deduction); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Save(ctx, payroll); err != nil {
		return nil, err
	}
	response := ToPayrollResponse(payroll, s.staffName(ctx, payroll.StaffID))
	return &response, nil
}

// Pay settles a payroll
func (s *PayrollService) Pay(ctx context.Context, id uuid.UUID, req PayPayrollRequest) (*PayrollResponse, error) {
	payroll, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	at := time.Now()
	if req.PaidAt != nil {
		at = *req.PaidAt
	}
	if err := payroll.MarkPaid(at); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Save(ctx, payroll); err != nil {
		return nil, err
	}
	response := ToPayrollResponse(payroll, s.staffName(ctx, payroll.StaffID))
	return &response, nil
}

// Delete removes an unpaid payroll record
func (s *PayrollService) Delete(ctx context.Context, id uuid.UUID) error {
	payroll, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if payroll.Status == staff.PayrollStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid payrolls cannot be deleted")
	}
	return s.payrollRepo.Delete(ctx, id)
}
