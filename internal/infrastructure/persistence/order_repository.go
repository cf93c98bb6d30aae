package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var orderSortable = map[string]bool{"created_at": true, "order_date": true, "total_amount": true, "status": true}

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its detail rows
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_detail.id ASC")
		}).
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer finds orders placed by a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID int64, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("customer_id = ?", customerID),
		filter, orderSortable,
	)
	if err := query.Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_detail.id ASC")
	}).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order aggregate together with its detail rows, without
// a revision check. Used for the initial insert.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

// SaveWithLock updates the order header with optimistic locking, then
// persists the detail rows. The header update only lands if the row still
// carries the version the caller read; a concurrent writer surfaces as
// StaleWrite and nothing is written.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := o.Version
		o.IncrementVersion()
		o.UpdatedAt = time.Now().UTC()

		result := tx.Model(&order.Order{}).
			Where("id = ? AND version = ?", o.ID, currentVersion).
			Updates(map[string]interface{}{
				"customer_id":  o.CustomerID,
				"order_date":   o.OrderDate,
				"total_amount": o.TotalAmount,
				"status":       o.Status,
				"cancelled_at": o.CancelledAt,
				"version":      o.Version,
				"updated_at":   o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrStaleWrite
		}

		for idx := range o.Details {
			o.Details[idx].OrderID = o.ID
			if err := tx.Save(&o.Details[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an order and cascades to its detail, payment and shipment
// rows. Those rows have no lifecycle of their own.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&order.Detail{}).Error; err != nil {
			return err
		}
		if err := NewGormPaymentRepository(tx).DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return NewGormShipmentRepository(tx).DeleteByOrder(ctx, id)
	})
}

// CountByCustomer counts orders referencing a customer
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDetailsByProduct counts order lines referencing a product
func (r *GormOrderRepository) CountDetailsByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Detail{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
