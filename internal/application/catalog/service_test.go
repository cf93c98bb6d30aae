package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/shared"
	"github.com/gomart/backend/internal/infrastructure/config"
	"github.com/gomart/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate())

	runner := txn.NewRunner(persistence.NewGormScope(db.DB), 5*time.Second, 3, nil)
	return NewService(runner, nil)
}

func seedCatalog(t *testing.T, svc *Service) (categoryID, supplierID, productID int64) {
	t.Helper()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	supplier, err := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductRequest{
		Name:          "Widget",
		CategoryID:    category.ID,
		SupplierID:    supplier.ID,
		Price:         decimal.NewFromFloat(9.99),
		StockQuantity: 10,
	})
	require.NoError(t, err)
	return category.ID, supplier.ID, product.ID
}

func TestService_CreateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	supplier, err := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	t.Run("valid product", func(t *testing.T) {
		product, err := svc.CreateProduct(ctx, CreateProductRequest{
			Name:       "Widget",
			CategoryID: category.ID,
			SupplierID: supplier.ID,
			Price:      decimal.NewFromFloat(9.99),
		})
		require.NoError(t, err)
		assert.NotZero(t, product.ID)
	})

	t.Run("dangling category fails with MissingReference", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{
			Name:       "Widget",
			CategoryID: 9999,
			SupplierID: supplier.ID,
			Price:      decimal.NewFromFloat(9.99),
		})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})

	t.Run("dangling supplier fails with MissingReference", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{
			Name:       "Widget",
			CategoryID: category.ID,
			SupplierID: 9999,
			Price:      decimal.NewFromFloat(9.99),
		})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})
}

// staleOnceScope wraps a real scope and, when armed, rolls the next
// transaction back with StaleWrite after the work ran, forcing a retry.
type staleOnceScope struct {
	inner    txn.Scope
	failNext bool
}

func (s *staleOnceScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	if !s.failNext {
		return s.inner.Execute(ctx, fn)
	}
	s.failNext = false
	return s.inner.Execute(ctx, func(repos txn.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return shared.ErrStaleWrite
	})
}

func TestService_CreateProduct_RetriedAttemptCommits(t *testing.T) {
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate())

	scope := &staleOnceScope{inner: persistence.NewGormScope(db.DB)}
	svc := NewService(txn.NewRunner(scope, 5*time.Second, 3, nil), nil)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	supplier, err := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	// The first attempt rolls back after the insert assigned an id. The
	// retry must start from a clean entity and actually commit a row, not
	// turn into an update of the rolled-back id.
	scope.failNext = true
	product, err := svc.CreateProduct(ctx, CreateProductRequest{
		Name:       "Widget",
		CategoryID: category.ID,
		SupplierID: supplier.ID,
		Price:      decimal.NewFromFloat(9.99),
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	loaded, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", loaded.Name)
}

func TestService_DeleteCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	categoryID, _, productID := seedCatalog(t, svc)

	t.Run("referenced category cannot be deleted", func(t *testing.T) {
		err := svc.DeleteCategory(ctx, categoryID)
		assert.ErrorIs(t, err, shared.ErrReferentialConflict)

		// The category is still there.
		_, err = svc.GetCategory(ctx, categoryID)
		assert.NoError(t, err)
	})

	t.Run("delete succeeds once the products are gone", func(t *testing.T) {
		require.NoError(t, svc.DeleteProduct(ctx, productID))
		require.NoError(t, svc.DeleteCategory(ctx, categoryID))

		_, err := svc.GetCategory(ctx, categoryID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_DeleteSupplier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, supplierID, productID := seedCatalog(t, svc)

	err := svc.DeleteSupplier(ctx, supplierID)
	assert.ErrorIs(t, err, shared.ErrReferentialConflict)

	require.NoError(t, svc.DeleteProduct(ctx, productID))
	assert.NoError(t, svc.DeleteSupplier(ctx, supplierID))
}

func TestService_DeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, _, productID := seedCatalog(t, svc)

	t.Run("discounted product cannot be deleted", func(t *testing.T) {
		discount, err := svc.CreateDiscount(ctx, CreateDiscountRequest{
			ProductID:       productID,
			DiscountPercent: decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		err = svc.DeleteProduct(ctx, productID)
		assert.ErrorIs(t, err, shared.ErrReferentialConflict)

		require.NoError(t, svc.DeleteDiscount(ctx, discount.ID))
		assert.NoError(t, svc.DeleteProduct(ctx, productID))
	})
}

func TestService_UpdateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, _, productID := seedCatalog(t, svc)

	updated, err := svc.UpdateProduct(ctx, productID, UpdateProductRequest{
		Name:        "Widget v2",
		Description: "now with more widget",
		Price:       decimal.NewFromFloat(12.50),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(12.50)))
	assert.Greater(t, updated.Version, 1, "revision advanced by the update")

	t.Run("unknown product fails with NotFound", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, 9999, UpdateProductRequest{
			Name:  "Ghost",
			Price: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_ListProducts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	supplier, err := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	for _, name := range []string{"Widget", "Gadget", "Gizmo"} {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{
			Name:       name,
			CategoryID: category.ID,
			SupplierID: supplier.ID,
			Price:      decimal.NewFromFloat(9.99),
		})
		require.NoError(t, err)
	}

	t.Run("pages carry the total match count", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 2

		page, err := svc.ListProducts(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("search narrows the page and the total", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "Widget"

		page, err := svc.ListProducts(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(1), page.Total)
	})
}

func TestService_CreateDiscount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, _, productID := seedCatalog(t, svc)

	t.Run("dangling product fails with MissingReference", func(t *testing.T) {
		_, err := svc.CreateDiscount(ctx, CreateDiscountRequest{
			ProductID:       9999,
			DiscountPercent: decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})

	t.Run("lists discounts for a product", func(t *testing.T) {
		_, err := svc.CreateDiscount(ctx, CreateDiscountRequest{
			ProductID:       productID,
			Description:     "spring",
			DiscountPercent: decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		discounts, err := svc.ListDiscountsByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Len(t, discounts, 1)
	})
}
