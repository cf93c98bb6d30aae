package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "version",
			"name", "description", "category_id", "supplier_id", "price", "stock_quantity",
		}).AddRow(
			int64(7), now, now, 1,
			"Widget", "", int64(1), int64(2), decimal.NewFromFloat(9.99), 50,
		)

		mock.ExpectQuery(`SELECT \* FROM "product" WHERE id = \$1`).
			WithArgs(int64(7), 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, 50, product.StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "product" WHERE id = \$1`).
			WithArgs(int64(7), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), 7)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	makeProduct := func(t *testing.T) *catalog.Product {
		product, err := catalog.NewProduct("Widget", "", 1, 2, decimal.NewFromFloat(9.99), 50)
		require.NoError(t, err)
		product.ID = 7
		product.Version = 3
		return product
	}

	t.Run("update lands when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := makeProduct(t)

		mock.ExpectExec(`UPDATE "product" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), product)

		require.NoError(t, err)
		assert.Equal(t, 4, product.Version, "in-memory revision advanced")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent modification surfaces as StaleWrite", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := makeProduct(t)

		mock.ExpectExec(`UPDATE "product" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), product)

		assert.ErrorIs(t, err, shared.ErrStaleWrite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "product" WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "product" WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 7), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Counts(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "product" WHERE category_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountByCategory(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
