package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDiscountRepository implements DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by its ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id int64) (*catalog.Discount, error) {
	var discount catalog.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &discount, nil
}

// FindByProduct finds all discounts for a product
func (r *GormDiscountRepository) FindByProduct(ctx context.Context, productID int64) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

// Delete deletes a discount
func (r *GormDiscountRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Discount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByProduct counts discounts referencing a product
func (r *GormDiscountRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Discount{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormDiscountRepository implements DiscountRepository
var _ catalog.DiscountRepository = (*GormDiscountRepository)(nil)
