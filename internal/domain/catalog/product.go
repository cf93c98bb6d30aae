package catalog

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a product available for sale.
// It is an aggregate root: StockQuantity is controlled state, mutated only
// through DecreaseStock/IncreaseStock during order confirmation and
// cancellation, never written directly by callers.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text"`
	CategoryID    int64           `gorm:"not null;index"`
	SupplierID    int64           `gorm:"not null;index"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "product"
}

// NewProduct creates a new product
func NewProduct(name, description string, categoryID, supplierID int64, price decimal.Decimal, stockQuantity int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if categoryID <= 0 {
		return nil, shared.NewMissingReference("product", "category_id")
	}
	if supplierID <= 0 {
		return nil, shared.NewMissingReference("product", "supplier_id")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainRange("product", "price", "Price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainRange("product", "stock_quantity", "Stock quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		CategoryID:        categoryID,
		SupplierID:        supplierID,
		Price:             price.Round(2),
		StockQuantity:     stockQuantity,
	}, nil
}

// ChangePrice updates the product price. Historical order lines keep the
// price they were created with, so this never rewrites past orders.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainRange("product", "price", "Price cannot be negative")
	}
	p.Price = price.Round(2)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateDetails updates the descriptive fields of the product
func (p *Product) UpdateDetails(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// DecreaseStock removes quantity from stock for a confirmed order line.
// Fails with InsufficientStock if the decrement would drive stock negative;
// the check runs after every individual decrement, not only at the end.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainRange("product", "stock_quantity", "Quantity must be positive")
	}
	if p.StockQuantity-quantity < 0 {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IncreaseStock credits quantity back to stock for a cancelled order line
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainRange("product", "stock_quantity", "Quantity must be positive")
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// InStock reports whether at least quantity units are available
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
