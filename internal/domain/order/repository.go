package order

import (
	"context"

	"github.com/gomart/backend/internal/domain/shared"
)

// Repository persists orders and their detail rows. Save persists the
// aggregate with its details; SaveWithLock additionally enforces the
// revision check and fails with StaleWrite on a version mismatch.
// Deleting an order cascades to its details, payments and shipments;
// those rows have no independent lifecycle.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByCustomer(ctx context.Context, customerID int64, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountDetailsByProduct(ctx context.Context, productID int64) (int64, error)
}

// PaymentRepository persists payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindByOrder(ctx context.Context, orderID int64) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	DeleteByOrder(ctx context.Context, orderID int64) error
}

// ShipmentRepository persists shipments
type ShipmentRepository interface {
	FindByID(ctx context.Context, id int64) (*Shipment, error)
	FindByOrder(ctx context.Context, orderID int64) ([]Shipment, error)
	Save(ctx context.Context, shipment *Shipment) error
	DeleteByOrder(ctx context.Context, orderID int64) error
}
