package ordering

import (
	"context"
	"errors"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/order"
	"github.com/gomart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles order lifecycle operations: placing, cancelling, payments
// and shipments. Every write runs as one retried transaction, so stock
// movements, detail rows and the order header commit or roll back together.
type Service struct {
	runner *txn.Runner
	clock  shared.Clock
	logger *zap.Logger
}

// NewService creates a new ordering Service
func NewService(runner *txn.Runner, clock shared.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = shared.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		runner: runner,
		clock:  clock,
		logger: logger,
	}
}

// PlaceOrder places an order for a customer. Unit prices are copied from the
// catalog at this instant; stock is decremented per line in ascending line
// order, failing with InsufficientStock as soon as a decrement would drive a
// product negative.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if req.CustomerID <= 0 {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Customer id is required")
	}
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Order must have at least one line")
	}
	for _, line := range req.Lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_OPERATION", "Order lines need a product id and a positive quantity")
		}
	}

	var resp OrderResponse
	err := s.runner.Run(ctx, "place_order", func(ctx context.Context, repos txn.Repositories) error {
		o, err := s.placeOrder(ctx, repos, req.CustomerID, req.Lines)
		if err != nil {
			return err
		}
		resp = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", resp.ID),
		zap.Int64("customer_id", resp.CustomerID),
		zap.String("total_amount", resp.TotalAmount.String()))
	return &resp, nil
}

// CheckoutCart places an order from the customer's staged cart rows and
// clears the cart in the same transaction. An aborted checkout leaves the
// cart untouched.
func (s *Service) CheckoutCart(ctx context.Context, customerID int64) (*OrderResponse, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Customer id is required")
	}

	var resp OrderResponse
	err := s.runner.Run(ctx, "checkout_cart", func(ctx context.Context, repos txn.Repositories) error {
		items, err := repos.Carts().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return shared.NewDomainError("INVALID_OPERATION", "Cart is empty")
		}

		lines := make([]OrderLineRequest, 0, len(items))
		for _, item := range items {
			lines = append(lines, OrderLineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		o, err := s.placeOrder(ctx, repos, customerID, lines)
		if err != nil {
			return err
		}
		if err := repos.Carts().DeleteByCustomer(ctx, customerID); err != nil {
			return err
		}
		resp = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cart checked out",
		zap.Int64("order_id", resp.ID),
		zap.Int64("customer_id", resp.CustomerID))
	return &resp, nil
}

// placeOrder stages the order aggregate and applies the stock decrements
// within the caller's transaction.
func (s *Service) placeOrder(ctx context.Context, repos txn.Repositories, customerID int64, lines []OrderLineRequest) (*order.Order, error) {
	if _, err := repos.Customers().FindByID(ctx, customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewMissingReference("order", "customer_id")
		}
		return nil, err
	}

	o, err := order.NewOrder(customerID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		product, err := repos.Products().FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewMissingReference("order_detail", "product_id")
			}
			return nil, err
		}
		if _, err := o.AddDetail(product.ID, line.Quantity, product.Price); err != nil {
			return nil, err
		}
	}

	if err := repos.Orders().Save(ctx, o); err != nil {
		return nil, err
	}

	// Decrement stock line by line in ascending line order. Each decrement
	// is checked on its own, so the first shortfall aborts the transaction
	// with stock already staged for earlier lines rolled back.
	for idx := range o.Details {
		detail := &o.Details[idx]
		product, err := repos.Products().FindByID(ctx, detail.ProductID)
		if err != nil {
			return nil, err
		}
		if err := product.DecreaseStock(detail.Quantity); err != nil {
			return nil, err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// UpdateOrderLineQuantity changes the quantity of one order line, rederives
// the line and order totals, and moves the stock delta on the product. A
// quantity increase that would drive stock negative aborts with
// InsufficientStock and leaves both the order and the product unchanged.
func (s *Service) UpdateOrderLineQuantity(ctx context.Context, orderID, detailID int64, quantity int) (*OrderResponse, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainRange("order_detail", "quantity", "Quantity must be positive")
	}

	var resp OrderResponse
	err := s.runner.Run(ctx, "update_order_line", func(ctx context.Context, repos txn.Repositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		detail := o.GetDetail(detailID)
		if detail == nil {
			return shared.NewDomainError("DETAIL_NOT_FOUND", "Order line not found")
		}
		delta := quantity - detail.Quantity

		if err := o.UpdateDetailQuantity(detailID, quantity); err != nil {
			return err
		}

		if delta != 0 {
			product, err := repos.Products().FindByID(ctx, detail.ProductID)
			if err != nil {
				return err
			}
			if delta > 0 {
				if err := product.DecreaseStock(delta); err != nil {
					return err
				}
			} else {
				if err := product.IncreaseStock(-delta); err != nil {
					return err
				}
			}
			if err := repos.Products().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		resp = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order line updated",
		zap.Int64("order_id", orderID),
		zap.Int64("detail_id", detailID),
		zap.Int("quantity", quantity))
	return &resp, nil
}

// CancelOrder cancels an order and credits its stock back. Cancelling an
// already cancelled order is a no-op: the call succeeds, reports
// AlreadyCancelled and credits nothing.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*CancelOrderResponse, error) {
	var resp CancelOrderResponse
	err := s.runner.Run(ctx, "cancel_order", func(ctx context.Context, repos txn.Repositories) error {
		resp = CancelOrderResponse{}

		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.IsCancelled() {
			resp.Order = toOrderResponse(o)
			resp.AlreadyCancelled = true
			return nil
		}

		if err := o.Cancel(s.clock.Now()); err != nil {
			return err
		}

		for idx := range o.Details {
			detail := &o.Details[idx]
			product, err := repos.Products().FindByID(ctx, detail.ProductID)
			if err != nil {
				return err
			}
			if err := product.IncreaseStock(detail.Quantity); err != nil {
				return err
			}
			if err := repos.Products().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		resp.Order = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.Int64("order_id", orderID),
		zap.Bool("already_cancelled", resp.AlreadyCancelled))
	return &resp, nil
}

// RecordPayment records a payment against an order. Payments against a
// cancelled order are rejected, and the running payment total may not exceed
// the order total. The order row is saved under its revision check even
// though no header field changes: two payments racing against the same order
// serialize on the version column, so the loser re-reads the committed
// payment set before its overpayment check instead of both passing it.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	var resp PaymentResponse
	err := s.runner.Run(ctx, "record_payment", func(ctx context.Context, repos txn.Repositories) error {
		o, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if o.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Cannot record a payment against a cancelled order")
		}

		payment, err := order.NewPayment(req.OrderID, req.Amount, req.Method, s.clock.Now())
		if err != nil {
			return err
		}

		existing, err := repos.Payments().FindByOrder(ctx, req.OrderID)
		if err != nil {
			return err
		}
		paid := payment.Amount
		for idx := range existing {
			paid = paid.Add(existing[idx].Amount)
		}
		if paid.GreaterThan(o.TotalAmount) {
			return shared.NewDomainRange("payment", "amount", "Payments cannot exceed the order total")
		}

		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		resp = toPaymentResponse(payment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("order_id", resp.OrderID),
		zap.Int64("payment_id", resp.ID),
		zap.String("amount", resp.Amount.String()))
	return &resp, nil
}

// RecordShipment records a shipment for an order and advances the order
// status to match: a shipped or in-transit shipment marks the order SHIPPED,
// a delivered shipment marks it DELIVERED.
func (s *Service) RecordShipment(ctx context.Context, req RecordShipmentRequest) (*ShipmentResponse, error) {
	var resp ShipmentResponse
	err := s.runner.Run(ctx, "record_shipment", func(ctx context.Context, repos txn.Repositories) error {
		o, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if o.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Cannot record a shipment for a cancelled order")
		}

		shipment, err := order.NewShipment(req.OrderID, req.Status, req.ShipmentDate, req.DeliveryDate)
		if err != nil {
			return err
		}
		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}

		switch req.Status {
		case order.ShipmentStatusShipped, order.ShipmentStatusInTransit:
			if o.Status == order.StatusConfirmed {
				if err := o.MarkShipped(); err != nil {
					return err
				}
				if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
					return err
				}
			}
		case order.ShipmentStatusDelivered:
			if o.Status == order.StatusConfirmed {
				if err := o.MarkShipped(); err != nil {
					return err
				}
			}
			if o.Status == order.StatusShipped {
				if err := o.MarkDelivered(); err != nil {
					return err
				}
			}
			if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
				return err
			}
		}

		resp = toShipmentResponse(shipment, o.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shipment recorded",
		zap.Int64("order_id", resp.OrderID),
		zap.Int64("shipment_id", resp.ID),
		zap.String("status", resp.Status.String()))
	return &resp, nil
}

// GetOrder loads an order with its payments and shipments
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*OrderDetailsResponse, error) {
	var resp OrderDetailsResponse
	err := s.runner.Run(ctx, "get_order", func(ctx context.Context, repos txn.Repositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		payments, err := repos.Payments().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		shipments, err := repos.Shipments().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		resp = OrderDetailsResponse{
			Order:     toOrderResponse(o),
			Payments:  make([]PaymentResponse, 0, len(payments)),
			Shipments: make([]ShipmentResponse, 0, len(shipments)),
		}
		for idx := range payments {
			resp.Payments = append(resp.Payments, toPaymentResponse(&payments[idx]))
		}
		for idx := range shipments {
			resp.Shipments = append(resp.Shipments, toShipmentResponse(&shipments[idx], o.Status))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListOrdersByCustomer lists a customer's orders, cancelled ones included
func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID int64, filter shared.Filter) ([]OrderResponse, error) {
	var resp []OrderResponse
	err := s.runner.Run(ctx, "list_orders_by_customer", func(ctx context.Context, repos txn.Repositories) error {
		orders, err := repos.Orders().FindByCustomer(ctx, customerID, filter)
		if err != nil {
			return err
		}
		resp = make([]OrderResponse, 0, len(orders))
		for idx := range orders {
			resp = append(resp, toOrderResponse(&orders[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteOrder removes an order and its dependent payment, shipment and
// detail rows. Stock is not credited back; cancellation is the operation
// that returns stock.
func (s *Service) DeleteOrder(ctx context.Context, orderID int64) error {
	err := s.runner.Run(ctx, "delete_order", func(ctx context.Context, repos txn.Repositories) error {
		return repos.Orders().Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Int64("order_id", orderID))
	return nil
}
