package catalog

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles catalog maintenance: categories, suppliers, products and
// discounts. Deletes are restricted: a row still referenced by dependents
// that do not cascade fails with ReferentialConflict, checked inside the
// same transaction as the delete so staged rows count.
type Service struct {
	runner *txn.Runner
	logger *zap.Logger
}

// NewService creates a new catalog Service
func NewService(runner *txn.Runner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{runner: runner, logger: logger}
}

// CreateCategory creates a new category. The entity is constructed inside
// the transaction so a retried attempt starts from a clean insert.
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	err := s.runner.Run(ctx, "create_category", func(ctx context.Context, repos txn.Repositories) error {
		category, err := catalog.NewCategory(req.Name)
		if err != nil {
			return err
		}
		if err := repos.Categories().Save(ctx, category); err != nil {
			return err
		}
		resp = toCategoryResponse(category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenameCategory changes a category's name
func (s *Service) RenameCategory(ctx context.Context, id int64, name string) (*CategoryResponse, error) {
	var resp CategoryResponse
	err := s.runner.Run(ctx, "rename_category", func(ctx context.Context, repos txn.Repositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := category.Rename(name); err != nil {
			return err
		}
		if err := repos.Categories().Save(ctx, category); err != nil {
			return err
		}
		resp = toCategoryResponse(category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCategory deletes a category. Fails with ReferentialConflict while
// any product still references it.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_category", func(ctx context.Context, repos txn.Repositories) error {
		count, err := repos.Products().CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewReferentialConflict("category", "id")
		}
		return repos.Categories().Delete(ctx, id)
	})
}

// GetCategory loads a category by id
func (s *Service) GetCategory(ctx context.Context, id int64) (*CategoryResponse, error) {
	var resp CategoryResponse
	err := s.runner.Run(ctx, "get_category", func(ctx context.Context, repos txn.Repositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toCategoryResponse(category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCategories lists categories with pagination
func (s *Service) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	var resp []CategoryResponse
	err := s.runner.Run(ctx, "list_categories", func(ctx context.Context, repos txn.Repositories) error {
		categories, err := repos.Categories().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		resp = make([]CategoryResponse, 0, len(categories))
		for idx := range categories {
			resp = append(resp, toCategoryResponse(&categories[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateSupplier creates a new supplier
func (s *Service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	var resp SupplierResponse
	err := s.runner.Run(ctx, "create_supplier", func(ctx context.Context, repos txn.Repositories) error {
		supplier, err := catalog.NewSupplier(req.Name, req.ContactInfo)
		if err != nil {
			return err
		}
		if err := repos.Suppliers().Save(ctx, supplier); err != nil {
			return err
		}
		resp = toSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSupplierContact changes a supplier's contact info
func (s *Service) UpdateSupplierContact(ctx context.Context, id int64, contactInfo string) (*SupplierResponse, error) {
	var resp SupplierResponse
	err := s.runner.Run(ctx, "update_supplier_contact", func(ctx context.Context, repos txn.Repositories) error {
		supplier, err := repos.Suppliers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		supplier.UpdateContactInfo(contactInfo)
		if err := repos.Suppliers().Save(ctx, supplier); err != nil {
			return err
		}
		resp = toSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSupplier deletes a supplier. Fails with ReferentialConflict while
// any product still references it.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_supplier", func(ctx context.Context, repos txn.Repositories) error {
		count, err := repos.Products().CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewReferentialConflict("supplier", "id")
		}
		return repos.Suppliers().Delete(ctx, id)
	})
}

// ListSuppliers lists suppliers with pagination
func (s *Service) ListSuppliers(ctx context.Context, filter shared.Filter) ([]SupplierResponse, error) {
	var resp []SupplierResponse
	err := s.runner.Run(ctx, "list_suppliers", func(ctx context.Context, repos txn.Repositories) error {
		suppliers, err := repos.Suppliers().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		resp = make([]SupplierResponse, 0, len(suppliers))
		for idx := range suppliers {
			resp = append(resp, toSupplierResponse(&suppliers[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateProduct creates a new product. Its category and supplier must exist
// at the instant of the insert; a dangling reference fails with
// MissingReference.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.runner.Run(ctx, "create_product", func(ctx context.Context, repos txn.Repositories) error {
		product, err := catalog.NewProduct(req.Name, req.Description, req.CategoryID, req.SupplierID, req.Price, req.StockQuantity)
		if err != nil {
			return err
		}
		if _, err := repos.Categories().FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("product", "category_id")
			}
			return err
		}
		if _, err := repos.Suppliers().FindByID(ctx, req.SupplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("product", "supplier_id")
			}
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		resp = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.Int64("product_id", resp.ID),
		zap.String("name", resp.Name))
	return &resp, nil
}

// UpdateProduct changes a product's descriptive fields and price. The write
// carries a revision check, so a concurrent stock movement surfaces as
// StaleWrite and the update retries from a fresh read.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.runner.Run(ctx, "update_product", func(ctx context.Context, repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := product.UpdateDetails(req.Name, req.Description); err != nil {
			return err
		}
		if err := product.ChangePrice(req.Price); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		resp = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct deletes a product. Order lines, cart rows, reviews and
// discounts all restrict the delete.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_product", func(ctx context.Context, repos txn.Repositories) error {
		details, err := repos.Orders().CountDetailsByProduct(ctx, id)
		if err != nil {
			return err
		}
		if details > 0 {
			return shared.NewReferentialConflict("product", "id")
		}
		carts, err := repos.Carts().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if carts > 0 {
			return shared.NewReferentialConflict("product", "id")
		}
		reviews, err := repos.Reviews().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if reviews > 0 {
			return shared.NewReferentialConflict("product", "id")
		}
		discounts, err := repos.Discounts().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if discounts > 0 {
			return shared.NewReferentialConflict("product", "id")
		}
		return repos.Products().Delete(ctx, id)
	})
}

// GetProduct loads a product by id
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.runner.Run(ctx, "get_product", func(ctx context.Context, repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts lists one page of products matching the filter, together
// with the total match count for paging.
func (s *Service) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	var resp shared.Paginated[ProductResponse]
	err := s.runner.Run(ctx, "list_products", func(ctx context.Context, repos txn.Repositories) error {
		products, err := repos.Products().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.Products().Count(ctx, filter)
		if err != nil {
			return err
		}
		items := make([]ProductResponse, 0, len(products))
		for idx := range products {
			items = append(items, toProductResponse(&products[idx]))
		}
		resp = shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangeProductPrice updates only the price of a product. Order lines keep
// the unit price they were staged with.
func (s *Service) ChangeProductPrice(ctx context.Context, id int64, price decimal.Decimal) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.runner.Run(ctx, "change_product_price", func(ctx context.Context, repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := product.ChangePrice(price); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		resp = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDiscount creates a discount for a product
func (s *Service) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	var resp DiscountResponse
	err := s.runner.Run(ctx, "create_discount", func(ctx context.Context, repos txn.Repositories) error {
		discount, err := catalog.NewDiscount(req.ProductID, req.Description, req.DiscountPercent)
		if err != nil {
			return err
		}
		if _, err := repos.Products().FindByID(ctx, req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("discount", "product_id")
			}
			return err
		}
		if err := repos.Discounts().Save(ctx, discount); err != nil {
			return err
		}
		resp = toDiscountResponse(discount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangeDiscountPercent updates a discount's percentage
func (s *Service) ChangeDiscountPercent(ctx context.Context, id int64, percent decimal.Decimal) (*DiscountResponse, error) {
	var resp DiscountResponse
	err := s.runner.Run(ctx, "change_discount_percent", func(ctx context.Context, repos txn.Repositories) error {
		discount, err := repos.Discounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := discount.ChangePercent(percent); err != nil {
			return err
		}
		if err := repos.Discounts().Save(ctx, discount); err != nil {
			return err
		}
		resp = toDiscountResponse(discount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDiscount deletes a discount. Nothing references discounts, so the
// delete is unconditional.
func (s *Service) DeleteDiscount(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_discount", func(ctx context.Context, repos txn.Repositories) error {
		return repos.Discounts().Delete(ctx, id)
	})
}

// ListDiscountsByProduct lists the discounts attached to a product
func (s *Service) ListDiscountsByProduct(ctx context.Context, productID int64) ([]DiscountResponse, error) {
	var resp []DiscountResponse
	err := s.runner.Run(ctx, "list_discounts_by_product", func(ctx context.Context, repos txn.Repositories) error {
		discounts, err := repos.Discounts().FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		resp = make([]DiscountResponse, 0, len(discounts))
		for idx := range discounts {
			resp = append(resp, toDiscountResponse(&discounts[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
