package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id int64) (*order.Payment, error) {
	var payment order.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByOrder finds all payments recorded against an order
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID int64) ([]order.Payment, error) {
	var payments []order.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *order.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// DeleteByOrder deletes all payments for an order
func (r *GormPaymentRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&order.Payment{}).Error
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ order.PaymentRepository = (*GormPaymentRepository)(nil)
