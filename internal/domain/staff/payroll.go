package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayrollStatus is used by list screens for status filtering
type PayrollStatus string

const (
	PayrollStatusPaid   PayrollStatus = "paid"
	PayrollStatusUnpaid PayrollStatus = "unpaid"
)

// Payroll is one month's salary record for a staff member. NetSalary is
// derived, never set directly; any change to the components recomputes it.
type Payroll struct {
	shared.BaseAggregateRoot
	StaffID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month       int             `gorm:"not null"` // 1-12
	Year        int             `gorm:"not null"`
	BasicSalary decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Allowance   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Deduction   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetSalary   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      PayrollStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (Payroll) TableName() string {
	return "payrolls"
}

// NewPayroll creates an unpaid payroll record for one month
func NewPayroll(staffID uuid.UUID, month, year int, basicSalary, allowance, deduction decimal.Decimal) (*Payroll, error) {
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}
	p := &Payroll{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StaffID:           staffID,
		Month:             month,
		Year:              year,
		Status:            PayrollStatusUnpaid,
	}
	if err := p.SetComponents(basicSalary, allowance, deduction); err != nil {
		return nil, err
	}
	return p, nil
}

// SetComponents updates the salary components and recomputes the net salary
func (p *Payroll) SetComponents(basicSalary, allowance, deduction decimal.Decimal) error {
	if basicSalary.IsNegative() || allowance.IsNegative() || deduction.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Salary components cannot be negative")
	}
	gross := basicSalary.Add(allowance)
	if deduction.GreaterThan(gross) {
		return shared.NewDomainError("INVALID_AMOUNT", "Deduction cannot exceed gross salary")
	}
	p.BasicSalary = basicSalary
	p.Allowance = allowance
	p.Deduction = deduction
	p.NetSalary = gross.Sub(deduction)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// MarkPaid settles the payroll. Components are frozen after payment.
func (p *Payroll) MarkPaid(at time.Time) error {
	if p.Status == PayrollStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Payroll is already paid")
	}
	if at.IsZero() {
		at = time.Now()
	}
	p.Status = PayrollStatusPaid
	p.PaidAt = &at
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
