package customers

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/customer"
	"github.com/gomart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles customer accounts, shopping carts and product reviews
type Service struct {
	runner *txn.Runner
	logger *zap.Logger
}

// NewService creates a new customers Service
func NewService(runner *txn.Runner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{runner: runner, logger: logger}
}

// CreateCustomer registers a new customer. Email addresses are unique.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	var resp CustomerResponse
	err := s.runner.Run(ctx, "create_customer", func(ctx context.Context, repos txn.Repositories) error {
		c, err := customer.NewCustomer(req.Name, req.Email, req.Phone, req.Address)
		if err != nil {
			return err
		}
		_, err = repos.Customers().FindByEmail(ctx, req.Email)
		if err == nil {
			return shared.NewDomainError("ALREADY_EXISTS", "A customer with this email already exists")
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if err := repos.Customers().Save(ctx, c); err != nil {
			return err
		}
		resp = toCustomerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.Int64("customer_id", resp.ID))
	return &resp, nil
}

// UpdateContact changes a customer's contact details
func (s *Service) UpdateContact(ctx context.Context, id int64, req UpdateContactRequest) (*CustomerResponse, error) {
	var resp CustomerResponse
	err := s.runner.Run(ctx, "update_customer_contact", func(ctx context.Context, repos txn.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := c.UpdateContact(req.Email, req.Phone, req.Address); err != nil {
			return err
		}
		if err := repos.Customers().Save(ctx, c); err != nil {
			return err
		}
		resp = toCustomerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCustomer deletes a customer. Cart rows, reviews and orders all
// restrict the delete; the checks run inside the delete's own transaction.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_customer", func(ctx context.Context, repos txn.Repositories) error {
		carts, err := repos.Carts().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if carts > 0 {
			return shared.NewReferentialConflict("customer", "id")
		}
		reviews, err := repos.Reviews().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if reviews > 0 {
			return shared.NewReferentialConflict("customer", "id")
		}
		orders, err := repos.Orders().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if orders > 0 {
			return shared.NewReferentialConflict("customer", "id")
		}
		return repos.Customers().Delete(ctx, id)
	})
}

// GetCustomer loads a customer by id
func (s *Service) GetCustomer(ctx context.Context, id int64) (*CustomerResponse, error) {
	var resp CustomerResponse
	err := s.runner.Run(ctx, "get_customer", func(ctx context.Context, repos txn.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toCustomerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCustomers lists customers with pagination
func (s *Service) ListCustomers(ctx context.Context, filter shared.Filter) ([]CustomerResponse, error) {
	var resp []CustomerResponse
	err := s.runner.Run(ctx, "list_customers", func(ctx context.Context, repos txn.Repositories) error {
		customers, err := repos.Customers().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		resp = make([]CustomerResponse, 0, len(customers))
		for idx := range customers {
			resp = append(resp, toCustomerResponse(&customers[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddCartItem stages a product in a customer's cart. Adding a product that
// is already staged increments the existing row's quantity instead of
// creating a second row.
func (s *Service) AddCartItem(ctx context.Context, req AddCartItemRequest) (*CartItemResponse, error) {
	var resp CartItemResponse
	err := s.runner.Run(ctx, "add_cart_item", func(ctx context.Context, repos txn.Repositories) error {
		if _, err := repos.Customers().FindByID(ctx, req.CustomerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("cart", "customer_id")
			}
			return err
		}
		if _, err := repos.Products().FindByID(ctx, req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("cart", "product_id")
			}
			return err
		}

		existing, err := repos.Carts().FindByCustomerAndProduct(ctx, req.CustomerID, req.ProductID)
		if err == nil {
			if err := existing.AddQuantity(req.Quantity); err != nil {
				return err
			}
			if err := repos.Carts().Save(ctx, existing); err != nil {
				return err
			}
			resp = toCartItemResponse(existing)
			return nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		item, err := customer.NewCartItem(req.CustomerID, req.ProductID, req.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Carts().Save(ctx, item); err != nil {
			return err
		}
		resp = toCartItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetCartItemQuantity replaces the staged quantity of a cart row
func (s *Service) SetCartItemQuantity(ctx context.Context, id int64, quantity int) (*CartItemResponse, error) {
	var resp CartItemResponse
	err := s.runner.Run(ctx, "set_cart_item_quantity", func(ctx context.Context, repos txn.Repositories) error {
		item, err := repos.Carts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := item.SetQuantity(quantity); err != nil {
			return err
		}
		if err := repos.Carts().Save(ctx, item); err != nil {
			return err
		}
		resp = toCartItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveCartItem deletes a single cart row
func (s *Service) RemoveCartItem(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "remove_cart_item", func(ctx context.Context, repos txn.Repositories) error {
		return repos.Carts().Delete(ctx, id)
	})
}

// ListCart lists the cart rows staged for a customer
func (s *Service) ListCart(ctx context.Context, customerID int64) ([]CartItemResponse, error) {
	var resp []CartItemResponse
	err := s.runner.Run(ctx, "list_cart", func(ctx context.Context, repos txn.Repositories) error {
		items, err := repos.Carts().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		resp = make([]CartItemResponse, 0, len(items))
		for idx := range items {
			resp = append(resp, toCartItemResponse(&items[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddReview records a customer's review of a product
func (s *Service) AddReview(ctx context.Context, req AddReviewRequest) (*ReviewResponse, error) {
	var resp ReviewResponse
	err := s.runner.Run(ctx, "add_review", func(ctx context.Context, repos txn.Repositories) error {
		review, err := customer.NewReview(req.CustomerID, req.ProductID, req.Rating, req.Comment)
		if err != nil {
			return err
		}
		if _, err := repos.Customers().FindByID(ctx, req.CustomerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("review", "customer_id")
			}
			return err
		}
		if _, err := repos.Products().FindByID(ctx, req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewMissingReference("review", "product_id")
			}
			return err
		}
		if err := repos.Reviews().Save(ctx, review); err != nil {
			return err
		}
		resp = toReviewResponse(review)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteReview deletes a review
func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_review", func(ctx context.Context, repos txn.Repositories) error {
		return repos.Reviews().Delete(ctx, id)
	})
}

// ListReviewsByProduct lists the reviews for a product
func (s *Service) ListReviewsByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]ReviewResponse, error) {
	var resp []ReviewResponse
	err := s.runner.Run(ctx, "list_reviews_by_product", func(ctx context.Context, repos txn.Repositories) error {
		reviews, err := repos.Reviews().FindByProduct(ctx, productID, filter)
		if err != nil {
			return err
		}
		resp = make([]ReviewResponse, 0, len(reviews))
		for idx := range reviews {
			resp = append(resp, toReviewResponse(&reviews[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
