package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/content"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var (
	newsSortable      = map[string]bool{"created_at": true, "title": true}
	promotionSortable = map[string]bool{"created_at": true, "start_date": true, "end_date": true}
)

// GormNewsRepository implements NewsRepository using GORM
type GormNewsRepository struct {
	db *gorm.DB
}

// NewGormNewsRepository creates a new GormNewsRepository
func NewGormNewsRepository(db *gorm.DB) *GormNewsRepository {
	return &GormNewsRepository{db: db}
}

// FindByID finds a news article by its ID
func (r *GormNewsRepository) FindByID(ctx context.Context, id int64) (*content.News, error) {
	var article content.News
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindAll finds all news articles with pagination
func (r *GormNewsRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.News, error) {
	var articles []content.News
	query := applyFilter(r.db.WithContext(ctx).Model(&content.News{}), filter, newsSortable)
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Save creates or updates a news article
func (r *GormNewsRepository) Save(ctx context.Context, article *content.News) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete deletes a news article
func (r *GormNewsRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&content.News{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormNewsRepository implements NewsRepository
var _ content.NewsRepository = (*GormNewsRepository)(nil)

// GormPromotionRepository implements PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByID finds a promotion by its ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id int64) (*content.Promotion, error) {
	var promotion content.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

// FindAll finds all promotions with pagination
func (r *GormPromotionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Promotion, error) {
	var promotions []content.Promotion
	query := applyFilter(r.db.WithContext(ctx).Model(&content.Promotion{}), filter, promotionSortable)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Save creates or updates a promotion
func (r *GormPromotionRepository) Save(ctx context.Context, promotion *content.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

// Delete deletes a promotion
func (r *GormPromotionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&content.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPromotionRepository implements PromotionRepository
var _ content.PromotionRepository = (*GormPromotionRepository)(nil)
