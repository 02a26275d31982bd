package clinical

import (
	"time"

	"github.com/hms/backend/internal/domain/shared"
)

// PathologyCategory groups lab tests for the pathology screens
type PathologyCategory struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PathologyCategory) TableName() string {
	return "pathology_categories"
}

// NewPathologyCategory creates a pathology category
func NewPathologyCategory(name, description string) (*PathologyCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &PathologyCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update changes the category's fields
func (c *PathologyCategory) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
