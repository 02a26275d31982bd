package patient

import (
	"strings"
	"time"

	"github.com/hms/backend/internal/domain/shared"
)

// Gender as recorded on the patient registration form
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var validBloodGroups = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// Patient is a registered patient record
type Patient struct {
	shared.BaseAggregateRoot
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(200);uniqueIndex"`
	Phone        string `gorm:"type:varchar(30)"`
	Gender       Gender `gorm:"type:varchar(10)"`
	BloodGroup   string `gorm:"type:varchar(5)"`
	Address      string `gorm:"type:text"`
	ProfileImage string `gorm:"type:varchar(500)"` // path returned by the upload service
}

// TableName returns the table name for GORM
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the display name used by list screens and exports
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NewPatient registers a new patient
func NewPatient(firstName, lastName, email string) (*Patient, error) {
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is not valid")
	}
	return &Patient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             strings.ToLower(email),
	}, nil
}

// SetBloodGroup records the patient's blood group
func (p *Patient) SetBloodGroup(group string) error {
	if group != "" && !validBloodGroups[group] {
		return shared.NewDomainError("INVALID_BLOOD_GROUP", "Blood group is not recognized")
	}
	p.BloodGroup = group
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetGender records the patient's gender
func (p *Patient) SetGender(gender Gender) error {
	switch gender {
	case GenderMale, GenderFemale, GenderOther, "":
		p.Gender = gender
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
		return nil
	default:
		return shared.NewDomainError("INVALID_GENDER", "Gender is not recognized")
	}
}

// SetContact updates phone and address
func (p *Patient) SetContact(phone, address string) {
	p.Phone = phone
	p.Address = address
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetProfileImage records the stored image path from the upload service.
// An empty path clears the image.
func (p *Patient) SetProfileImage(path string) {
	p.ProfileImage = path
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UpdateName changes the patient's name
func (p *Patient) UpdateName(firstName, lastName string) error {
	if firstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	p.FirstName = firstName
	p.LastName = lastName
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
