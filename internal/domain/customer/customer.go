package customer

import (
	"strings"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// Customer represents a customer who places orders and reviews products
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:255;not null"`
	Email   string `gorm:"size:255;not null"`
	Phone   string `gorm:"size:50"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customer"
}

// NewCustomer creates a new customer
func NewCustomer(name, email, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !validEmail(email) {
		return nil, shared.NewDomainRange("customer", "email", "Email address is not valid")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Address:    address,
	}, nil
}

// UpdateContact changes the customer's contact details
func (c *Customer) UpdateContact(email, phone, address string) error {
	if !validEmail(email) {
		return shared.NewDomainRange("customer", "email", "Email address is not valid")
	}
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
