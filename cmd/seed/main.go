// Command seed creates the schema and loads a small sample data set:
// a catalog of categories, suppliers and products, a few customers with
// carts and reviews, and storefront content. It is idempotent only in the
// sense that running it against a fresh database yields a working store;
// run it against an empty database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	appcatalog "github.com/gomart/backend/internal/application/catalog"
	appcontent "github.com/gomart/backend/internal/application/content"
	"github.com/gomart/backend/internal/application/customers"
	"github.com/gomart/backend/internal/application/ordering"
	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/domain/shared"
	"github.com/gomart/backend/internal/infrastructure/config"
	"github.com/gomart/backend/internal/infrastructure/logger"
	"github.com/gomart/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	gormLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Info("schema migrated", zap.String("driver", cfg.Database.Driver))

	clock := shared.SystemClock()
	runner := txn.NewRunner(persistence.NewGormScope(db.DB), cfg.Operation.Timeout, cfg.Operation.RetryAttempts, log)

	catalogSvc := appcatalog.NewService(runner, log.Named("catalog"))
	customerSvc := customers.NewService(runner, log.Named("customers"))
	orderSvc := ordering.NewService(runner, clock, log.Named("ordering"))
	contentSvc := appcontent.NewService(runner, clock, log.Named("content"))

	ctx := context.Background()

	electronics, err := catalogSvc.CreateCategory(ctx, appcatalog.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		return err
	}
	books, err := catalogSvc.CreateCategory(ctx, appcatalog.CreateCategoryRequest{Name: "Books"})
	if err != nil {
		return err
	}

	acme, err := catalogSvc.CreateSupplier(ctx, appcatalog.CreateSupplierRequest{
		Name:        "Acme Distribution",
		ContactInfo: "sales@acme.example.com",
	})
	if err != nil {
		return err
	}
	paper, err := catalogSvc.CreateSupplier(ctx, appcatalog.CreateSupplierRequest{
		Name:        "Paper Trail Ltd",
		ContactInfo: "orders@papertrail.example.com",
	})
	if err != nil {
		return err
	}

	headphones, err := catalogSvc.CreateProduct(ctx, appcatalog.CreateProductRequest{
		Name:          "Wireless Headphones",
		Description:   "Over-ear, 30h battery",
		CategoryID:    electronics.ID,
		SupplierID:    acme.ID,
		Price:         decimal.NewFromFloat(89.99),
		StockQuantity: 50,
	})
	if err != nil {
		return err
	}
	keyboard, err := catalogSvc.CreateProduct(ctx, appcatalog.CreateProductRequest{
		Name:          "Mechanical Keyboard",
		Description:   "Tenkeyless, brown switches",
		CategoryID:    electronics.ID,
		SupplierID:    acme.ID,
		Price:         decimal.NewFromFloat(129.00),
		StockQuantity: 35,
	})
	if err != nil {
		return err
	}
	novel, err := catalogSvc.CreateProduct(ctx, appcatalog.CreateProductRequest{
		Name:          "The Go Programming Language",
		Description:   "Donovan & Kernighan",
		CategoryID:    books.ID,
		SupplierID:    paper.ID,
		Price:         decimal.NewFromFloat(39.95),
		StockQuantity: 120,
	})
	if err != nil {
		return err
	}

	if _, err := catalogSvc.CreateDiscount(ctx, appcatalog.CreateDiscountRequest{
		ProductID:       headphones.ID,
		Description:     "Launch week",
		DiscountPercent: decimal.NewFromInt(10),
	}); err != nil {
		return err
	}

	alice, err := customerSvc.CreateCustomer(ctx, customers.CreateCustomerRequest{
		Name:    "Alice Nguyen",
		Email:   "alice@example.com",
		Phone:   "+1-555-0101",
		Address: "12 Maple St, Springfield",
	})
	if err != nil {
		return err
	}
	bob, err := customerSvc.CreateCustomer(ctx, customers.CreateCustomerRequest{
		Name:    "Bob Carter",
		Email:   "bob@example.com",
		Phone:   "+1-555-0102",
		Address: "48 Oak Ave, Springfield",
	})
	if err != nil {
		return err
	}

	if _, err := customerSvc.AddCartItem(ctx, customers.AddCartItemRequest{
		CustomerID: bob.ID,
		ProductID:  novel.ID,
		Quantity:   1,
	}); err != nil {
		return err
	}

	placed, err := orderSvc.PlaceOrder(ctx, ordering.PlaceOrderRequest{
		CustomerID: alice.ID,
		Lines: []ordering.OrderLineRequest{
			{ProductID: headphones.ID, Quantity: 1},
			{ProductID: keyboard.ID, Quantity: 1},
		},
	})
	if err != nil {
		return err
	}
	if _, err := orderSvc.RecordPayment(ctx, ordering.RecordPaymentRequest{
		OrderID: placed.ID,
		Amount:  placed.TotalAmount,
		Method:  order.PaymentMethodCreditCard,
	}); err != nil {
		return err
	}

	if _, err := customerSvc.AddReview(ctx, customers.AddReviewRequest{
		CustomerID: alice.ID,
		ProductID:  headphones.ID,
		Rating:     5,
		Comment:    "Great battery life",
	}); err != nil {
		return err
	}

	if _, err := contentSvc.PublishNews(ctx, "Store opening", "Our online store is now live.", nil); err != nil {
		return err
	}
	now := clock.Now()
	if _, err := contentSvc.CreatePromotion(ctx, "Summer sale", "10% off selected electronics",
		now, now.Add(14*24*time.Hour)); err != nil {
		return err
	}

	log.Info("seed complete",
		zap.Int64("order_id", placed.ID),
		zap.String("order_total", placed.TotalAmount.String()))
	return nil
}
