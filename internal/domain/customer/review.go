package customer

import (
	"github.com/gomart/backend/internal/domain/shared"
)

// Review represents a customer review for a product
type Review struct {
	shared.BaseEntity
	CustomerID int64  `gorm:"not null;index"`
	ProductID  int64  `gorm:"not null;index"`
	Rating     int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "review"
}

// NewReview creates a new product review. Rating is constrained to 1..5.
func NewReview(customerID, productID int64, rating int, comment string) (*Review, error) {
	if customerID <= 0 {
		return nil, shared.NewMissingReference("review", "customer_id")
	}
	if productID <= 0 {
		return nil, shared.NewMissingReference("review", "product_id")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainRange("review", "rating", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
