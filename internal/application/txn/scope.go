package txn

import (
	"context"

	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/gomart/backend/internal/domain/content"
	"github.com/gomart/backend/internal/domain/customer"
	"github.com/gomart/backend/internal/domain/order"
)

// Scope provides transactional access to the repositories. When a function
// is executed within a scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
type Scope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to every repository within one transaction.
// All repositories returned share the same underlying connection, so checks
// performed through them see mutations staged earlier in the same
// transaction.
type Repositories interface {
	Categories() catalog.CategoryRepository
	Suppliers() catalog.SupplierRepository
	Products() catalog.ProductRepository
	Discounts() catalog.DiscountRepository
	Customers() customer.CustomerRepository
	Carts() customer.CartRepository
	Reviews() customer.ReviewRepository
	Orders() order.Repository
	Payments() order.PaymentRepository
	Shipments() order.ShipmentRepository
	News() content.NewsRepository
	Promotions() content.PromotionRepository
}
