package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/customer"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart row by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id int64) (*customer.CartItem, error) {
	var item customer.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCustomer finds all cart rows for a customer
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID int64) ([]customer.CartItem, error) {
	var items []customer.CartItem
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCustomerAndProduct finds the cart row for a (customer, product) pair
func (r *GormCartRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*customer.CartItem, error) {
	var item customer.CartItem
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a cart row
func (r *GormCartRepository) Save(ctx context.Context, item *customer.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes a cart row
func (r *GormCartRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&customer.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCustomer deletes all cart rows for a customer (cart checkout)
func (r *GormCartRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&customer.CartItem{}).Error
}

// CountByCustomer counts cart rows referencing a customer
func (r *GormCartRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.CartItem{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProduct counts cart rows referencing a product
func (r *GormCartRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.CartItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCartRepository implements CartRepository
var _ customer.CartRepository = (*GormCartRepository)(nil)
