package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/customer"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var reviewSortable = map[string]bool{"created_at": true, "rating": true}

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id int64) (*customer.Review, error) {
	var review customer.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct finds reviews for a product
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]customer.Review, error) {
	var reviews []customer.Review
	query := applyFilter(
		r.db.WithContext(ctx).Model(&customer.Review{}).Where("product_id = ?", productID),
		filter, reviewSortable,
	)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *customer.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&customer.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByCustomer counts reviews referencing a customer
func (r *GormReviewRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.Review{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProduct counts reviews referencing a product
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customer.Review{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ customer.ReviewRepository = (*GormReviewRepository)(nil)
