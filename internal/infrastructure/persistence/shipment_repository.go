package persistence

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id int64) (*order.Shipment, error) {
	var shipment order.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByOrder finds all shipments for an order
func (r *GormShipmentRepository) FindByOrder(ctx context.Context, orderID int64) ([]order.Shipment, error) {
	var shipments []order.Shipment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *order.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// DeleteByOrder deletes all shipments for an order
func (r *GormShipmentRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&order.Shipment{}).Error
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ order.ShipmentRepository = (*GormShipmentRepository)(nil)
