package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/listing"
	"github.com/hms/backend/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// CreateStaffRequest represents a request to hire a staff member
type CreateStaffRequest struct {
	Role          string `json:"role" binding:"required,oneof=nurse pharmacist receptionist case_handler"`
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"max=30"`
	Designation   string `json:"designation" binding:"max=100"`
	Qualification string `json:"qualification" binding:"max=200"`
	ProfileImage  string `json:"profile_image" binding:"max=500"`
}

// UpdateStaffRequest represents a request to update a staff member
type UpdateStaffRequest struct {
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=30"`
	Designation   string `json:"designation" binding:"max=100"`
	Qualification string `json:"qualification" binding:"max=200"`
	ProfileImage  string `json:"profile_image" binding:"max=500"`
	Active        *bool  `json:"active"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID            uuid.UUID `json:"id"`
	Role          string    `json:"role"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Designation   string    `json:"designation"`
	Qualification string    `json:"qualification"`
	ProfileImage  string    `json:"profile_image"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToStaffResponse converts a staff member to its API representation
func ToStaffResponse(s *staff.StaffMember) StaffResponse {
	return StaffResponse{
		ID:            s.ID,
		Role:          string(s.Role),
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		FullName:      s.FullName(),
		Email:         s.Email,
		Phone:         s.Phone,
		Designation:   s.Designation,
		Qualification: s.Qualification,
		ProfileImage:  s.ProfileImage,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// StaffSource feeds staff members to the listing controller
func StaffSource() listing.Source[staff.StaffMember] {
	return listing.Source[staff.StaffMember]{
		SearchFields: func(s staff.StaffMember) []string {
			return []string{s.FullName(), s.Email, s.Phone, s.Designation}
		},
		Timestamp: func(s staff.StaffMember) time.Time { return s.CreatedAt },
		Status:    func(s staff.StaffMember) string { return string(s.Status) },
	}
}

// CreatePayrollRequest represents a request to create a payroll record
type CreatePayrollRequest struct {
	StaffID     uuid.UUID       `json:"staff_id" binding:"required"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=2000"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
}

// UpdatePayrollRequest represents a request to update an unpaid payroll
type UpdatePayrollRequest struct {
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
}

// PayPayrollRequest represents a request to settle a payroll
type PayPayrollRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// PayrollResponse represents a payroll in API responses
type PayrollResponse struct {
	ID          uuid.UUID       `json:"id"`
	StaffID     uuid.UUID       `json:"staff_id"`
	StaffName   string          `json:"staff_name,omitempty"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPayrollResponse converts a payroll to its API representation
func ToPayrollResponse(p *staff.Payroll, staffName string) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		StaffID:     p.StaffID,
		StaffName:   staffName,
		Month:       p.Month,
		Year:        p.Year,
		BasicSalary: p.BasicSalary,
		Allowance:   p.Allowance,
		Deduction:   p.Deduction,
		NetSalary:   p.NetSalary,
		Status:      string(p.Status),
		PaidAt:      p.PaidAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PayrollSource feeds payroll responses to the listing controller. It runs
// over the response shape so search can cover the resolved staff name.
func PayrollSource() listing.Source[PayrollResponse] {
	return listing.Source[PayrollResponse]{
		SearchFields: func(p PayrollResponse) []string {
			return []string{p.StaffName}
		},
		Timestamp: func(p PayrollResponse) time.Time { return p.CreatedAt },
		Status:    func(p PayrollResponse) string { return p.Status },
	}
}
