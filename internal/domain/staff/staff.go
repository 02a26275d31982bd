package staff

import (
	"strings"
	"time"

	"github.com/hms/backend/internal/domain/shared"
)

// Role identifies the staff screen a member belongs to. All four roles share
// one record shape; the list screens differ only in the role they filter on.
type Role string

const (
	RoleNurse        Role = "nurse"
	RolePharmacist   Role = "pharmacist"
	RoleReceptionist Role = "receptionist"
	RoleCaseHandler  Role = "case_handler"
)

// IsValid reports whether the role is one of the recognized values
func (r Role) IsValid() bool {
	switch r {
	case RoleNurse, RolePharmacist, RoleReceptionist, RoleCaseHandler:
		return true
	}
	return false
}

// StaffStatus is used by list screens for status filtering
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

// StaffMember is one nurse, pharmacist, receptionist or case handler
type StaffMember struct {
	shared.BaseAggregateRoot
	Role         Role        `gorm:"type:varchar(20);not null;index"`
	FirstName    string      `gorm:"type:varchar(100);not null"`
	LastName     string      `gorm:"type:varchar(100)"`
	Email        string      `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone        string      `gorm:"type:varchar(30)"`
	Designation  string      `gorm:"type:varchar(100)"`
	Qualification string     `gorm:"type:varchar(200)"`
	ProfileImage string      `gorm:"type:varchar(500)"`
	Status       StaffStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (StaffMember) TableName() string {
	return "staff_members"
}

// FullName returns the display name used by list screens and exports
func (s *StaffMember) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// NewStaffMember hires a new staff member in the given role
func NewStaffMember(role Role, firstName, lastName, email string) (*StaffMember, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Staff role is not recognized")
	}
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is not valid")
	}
	return &StaffMember{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Role:              role,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             strings.ToLower(email),
		Status:            StaffStatusActive,
	}, nil
}

// Update changes the member's editable fields
func (s *StaffMember) Update(firstName, lastName, phone, designation, qualification string) error {
	if firstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	s.FirstName = firstName
	s.LastName = lastName
	s.Phone = phone
	s.Designation = designation
	s.Qualification = qualification
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetProfileImage records the stored image path from the upload service
func (s *StaffMember) SetProfileImage(path string) {
	s.ProfileImage = path
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate removes the member from active rosters without deleting history
func (s *StaffMember) Deactivate() {
	s.Status = StaffStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate restores the member to active rosters
func (s *StaffMember) Activate() {
	s.Status = StaffStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
