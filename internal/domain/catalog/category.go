package catalog

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// Category represents a product category
type Category struct {
	shared.BaseEntity
	Name string `gorm:"size:255;not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "category"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	return nil
}
