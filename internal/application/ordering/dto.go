package ordering

import (
	"time"

	"github.com/gomart/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest represents a request to place an order
type PlaceOrderRequest struct {
	CustomerID int64              `json:"customer_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// OrderLineRequest represents one requested order line
type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// RecordPaymentRequest represents a request to record a payment against an order
type RecordPaymentRequest struct {
	OrderID int64               `json:"order_id"`
	Amount  decimal.Decimal     `json:"amount"`
	Method  order.PaymentMethod `json:"method"`
}

// RecordShipmentRequest represents a request to record a shipment for an order
type RecordShipmentRequest struct {
	OrderID      int64                `json:"order_id"`
	Status       order.ShipmentStatus `json:"status"`
	ShipmentDate *time.Time           `json:"shipment_date"`
	DeliveryDate *time.Time           `json:"delivery_date"`
}

// OrderLineResponse represents an order line in responses
type OrderLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID          int64               `json:"id"`
	CustomerID  int64               `json:"customer_id"`
	OrderDate   time.Time           `json:"order_date"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      order.Status        `json:"status"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
	Lines       []OrderLineResponse `json:"lines"`
	Version     int                 `json:"version"`
}

// CancelOrderResponse reports the outcome of a cancellation.
// AlreadyCancelled is true when the order was cancelled before the call;
// stock is not credited a second time in that case.
type CancelOrderResponse struct {
	Order            OrderResponse `json:"order"`
	AlreadyCancelled bool          `json:"already_cancelled"`
}

// PaymentResponse represents a payment in responses
type PaymentResponse struct {
	ID          int64               `json:"id"`
	OrderID     int64               `json:"order_id"`
	PaymentDate time.Time           `json:"payment_date"`
	Amount      decimal.Decimal     `json:"amount"`
	Method      order.PaymentMethod `json:"method"`
}

// ShipmentResponse represents a shipment in responses
type ShipmentResponse struct {
	ID           int64                `json:"id"`
	OrderID      int64                `json:"order_id"`
	ShipmentDate *time.Time           `json:"shipment_date,omitempty"`
	DeliveryDate *time.Time           `json:"delivery_date,omitempty"`
	Status       order.ShipmentStatus `json:"status"`
	OrderStatus  order.Status         `json:"order_status"`
}

// OrderDetailsResponse is the full read view of an order with its payments
// and shipments
type OrderDetailsResponse struct {
	Order     OrderResponse      `json:"order"`
	Payments  []PaymentResponse  `json:"payments"`
	Shipments []ShipmentResponse `json:"shipments"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Details))
	for idx := range o.Details {
		d := &o.Details[idx]
		lines = append(lines, OrderLineResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			LineTotal: d.LineTotal,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CancelledAt: o.CancelledAt,
		Lines:       lines,
		Version:     o.Version,
	}
}

func toPaymentResponse(p *order.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		OrderID:     p.OrderID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Method:      p.PaymentMethod,
	}
}

func toShipmentResponse(s *order.Shipment, orderStatus order.Status) ShipmentResponse {
	return ShipmentResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		ShipmentDate: s.ShipmentDate,
		DeliveryDate: s.DeliveryDate,
		Status:       s.ShipmentStatus,
		OrderStatus:  orderStatus,
	}
}
