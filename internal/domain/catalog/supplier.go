package catalog

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// Supplier represents a supplier of products
type Supplier struct {
	shared.BaseEntity
	Name        string `gorm:"size:255;not null"`
	ContactInfo string `gorm:"size:255"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "supplier"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactInfo string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		ContactInfo: contactInfo,
	}, nil
}

// UpdateContactInfo changes the supplier contact info
func (s *Supplier) UpdateContactInfo(contactInfo string) {
	s.ContactInfo = contactInfo
	s.UpdatedAt = time.Now().UTC()
}
