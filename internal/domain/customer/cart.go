package customer

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// CartItem represents one product staged in a customer's shopping cart.
// A cart row is keyed by the (customer, product) pair; adding the same
// product again increments the quantity rather than creating a second row.
type CartItem struct {
	shared.BaseEntity
	CustomerID int64 `gorm:"not null;uniqueIndex:idx_cart_customer_product,priority:1"`
	ProductID  int64 `gorm:"not null;uniqueIndex:idx_cart_customer_product,priority:2"`
	Quantity   int   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart"
}

// NewCartItem creates a new cart row
func NewCartItem(customerID, productID int64, quantity int) (*CartItem, error) {
	if customerID <= 0 {
		return nil, shared.NewMissingReference("cart", "customer_id")
	}
	if productID <= 0 {
		return nil, shared.NewMissingReference("cart", "product_id")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainRange("cart", "quantity", "Quantity must be positive")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// AddQuantity increments the staged quantity
func (c *CartItem) AddQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainRange("cart", "quantity", "Quantity must be positive")
	}
	c.Quantity += quantity
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// SetQuantity replaces the staged quantity
func (c *CartItem) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainRange("cart", "quantity", "Quantity must be positive")
	}
	c.Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return nil
}
