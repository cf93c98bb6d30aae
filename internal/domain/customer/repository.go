package customer

import (
	"context"

	"github.com/gomart/backend/internal/domain/shared"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository persists cart rows
type CartRepository interface {
	FindByID(ctx context.Context, id int64) (*CartItem, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]CartItem, error)
	FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}

// ReviewRepository persists reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id int64) (*Review, error)
	FindByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}
