package persistence

import (
	"context"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/gomart/backend/internal/domain/content"
	"github.com/gomart/backend/internal/domain/customer"
	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormScope implements txn.Scope using GORM transactions
type GormScope struct {
	db *gorm.DB
}

// NewGormScope creates a new GormScope
func NewGormScope(db *gorm.DB) *GormScope {
	return &GormScope{db: db}
}

// Execute runs the given function within a database transaction. Every
// repository handed to fn is bound to the transaction connection, so reads
// observe writes staged earlier in the same transaction.
func (s *GormScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
	if err != nil {
		logger.L(ctx).Debug("transaction rolled back", zap.Error(err))
	}
	return err
}

// gormRepositories provides repositories bound to one transaction
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Categories() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormRepositories) Suppliers() catalog.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) Discounts() catalog.DiscountRepository {
	return NewGormDiscountRepository(r.tx)
}

func (r *gormRepositories) Customers() customer.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormRepositories) Carts() customer.CartRepository {
	return NewGormCartRepository(r.tx)
}

func (r *gormRepositories) Reviews() customer.ReviewRepository {
	return NewGormReviewRepository(r.tx)
}

func (r *gormRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormRepositories) Payments() order.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormRepositories) Shipments() order.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

func (r *gormRepositories) News() content.NewsRepository {
	return NewGormNewsRepository(r.tx)
}

func (r *gormRepositories) Promotions() content.PromotionRepository {
	return NewGormPromotionRepository(r.tx)
}

// Ensure GormScope implements txn.Scope
var _ txn.Scope = (*GormScope)(nil)
var _ txn.Repositories = (*gormRepositories)(nil)
