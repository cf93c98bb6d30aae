package catalog

import (
	"context"

	"github.com/gomart/backend/internal/domain/shared"
)

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository persists products.
// SaveWithLock enforces the revision check: it fails with StaleWrite when
// the product row changed since it was read.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID int64, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	SaveWithLock(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int64, error)
}

// DiscountRepository persists discounts
type DiscountRepository interface {
	FindByID(ctx context.Context, id int64) (*Discount, error)
	FindByProduct(ctx context.Context, productID int64) ([]Discount, error)
	Save(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id int64) error
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}
