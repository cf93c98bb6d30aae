package catalog

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount represents a discount applicable to a product
type Discount struct {
	shared.BaseEntity
	ProductID       int64           `gorm:"not null;index"`
	Description     string          `gorm:"size:255"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discount"
}

// NewDiscount creates a new discount for a product
func NewDiscount(productID int64, description string, discountPercent decimal.Decimal) (*Discount, error) {
	if productID <= 0 {
		return nil, shared.NewMissingReference("discount", "product_id")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return nil, shared.NewDomainRange("discount", "discount_percent", "Discount percent must be between 0 and 100")
	}

	return &Discount{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		Description:     description,
		DiscountPercent: discountPercent,
	}, nil
}

// ChangePercent updates the discount percentage
func (d *Discount) ChangePercent(discountPercent decimal.Decimal) error {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return shared.NewDomainRange("discount", "discount_percent", "Discount percent must be between 0 and 100")
	}
	d.DiscountPercent = discountPercent
	d.UpdatedAt = time.Now().UTC()
	return nil
}
