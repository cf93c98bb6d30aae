package order

import (
	"fmt"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order
type Status string

const (
	// StatusConfirmed is the initial state: stock has been deducted
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusConfirmed:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false
	}
	return false
}

// Detail represents a line item within an order. UnitPrice is copied from
// the product at the instant the line is staged and never changes afterwards,
// so later catalog price changes do not rewrite order history. LineTotal is
// derived state: always Quantity * UnitPrice.
type Detail struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Detail) TableName() string {
	return "order_detail"
}

func newDetail(productID int64, quantity int, unitPrice decimal.Decimal) (*Detail, error) {
	if productID <= 0 {
		return nil, shared.NewMissingReference("order_detail", "product_id")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainRange("order_detail", "quantity", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainRange("order_detail", "unit_price", "Unit price cannot be negative")
	}

	now := time.Now().UTC()
	d := &Detail{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice.Round(2),
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.deriveLineTotal()
	return d, nil
}

// deriveLineTotal recomputes LineTotal from quantity and unit price.
// Line-level derivation always runs before the order-level re-sum.
func (d *Detail) deriveLineTotal() {
	d.LineTotal = d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))).Round(2)
}

// Order represents an order placed by a customer. It is the aggregate root
// owning its Detail rows; Payment and Shipment rows reference it but are
// recorded through their own repositories within the same transaction.
//
// TotalAmount is derived state: after every mutation of the detail set it is
// recomputed as the full sum of line totals rather than adjusted by deltas,
// so a missed update path cannot make it drift.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID  int64           `gorm:"not null;index"`
	OrderDate   time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      Status          `gorm:"size:20;not null"`
	CancelledAt *time.Time
	Details     []Detail `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "order"
}

// NewOrder creates a new confirmed order for a customer. orderDate comes
// from the caller's clock.
func NewOrder(customerID int64, orderDate time.Time) (*Order, error) {
	if customerID <= 0 {
		return nil, shared.NewMissingReference("order", "customer_id")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		OrderDate:         orderDate,
		TotalAmount:       decimal.Zero,
		Status:            StatusConfirmed,
		Details:           make([]Detail, 0),
	}, nil
}

// AddDetail stages a new line item and recomputes the order total.
// Lines for the same product are kept separate only if staged separately;
// staging the same product twice merges into one line.
func (o *Order) AddDetail(productID int64, quantity int, unitPrice decimal.Decimal) (*Detail, error) {
	if o.Status != StatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add lines to a %s order", o.Status))
	}

	for idx := range o.Details {
		if o.Details[idx].ProductID == productID {
			if err := o.updateDetailQuantityAt(idx, o.Details[idx].Quantity+quantity); err != nil {
				return nil, err
			}
			return &o.Details[idx], nil
		}
	}

	detail, err := newDetail(productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	detail.OrderID = o.ID

	o.Details = append(o.Details, *detail)
	o.recalculateTotal()
	o.UpdatedAt = time.Now().UTC()

	return &o.Details[len(o.Details)-1], nil
}

// UpdateDetailQuantity changes the quantity of an existing line and
// rederives its line total and the order total. The unit price is immutable.
func (o *Order) UpdateDetailQuantity(detailID int64, quantity int) error {
	if o.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update lines of a %s order", o.Status))
	}

	for idx := range o.Details {
		if o.Details[idx].ID == detailID {
			return o.updateDetailQuantityAt(idx, quantity)
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Order line not found")
}

func (o *Order) updateDetailQuantityAt(idx, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainRange("order_detail", "quantity", "Quantity must be positive")
	}
	o.Details[idx].Quantity = quantity
	o.Details[idx].deriveLineTotal()
	o.Details[idx].UpdatedAt = time.Now().UTC()
	o.recalculateTotal()
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkShipped transitions the order to SHIPPED
func (o *Order) MarkShipped() error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}
	o.Status = StatusShipped
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkDelivered transitions the order to DELIVERED
func (o *Order) MarkDelivered() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}
	o.Status = StatusDelivered
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the order to CANCELLED. Cancelling an already cancelled
// order fails with AlreadyCancelled so callers can treat it as a no-op
// without crediting stock twice. The total is preserved as a historical
// record.
func (o *Order) Cancel(at time.Time) error {
	if o.Status == StatusCancelled {
		return shared.ErrAlreadyCancelled
	}
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	o.Status = StatusCancelled
	o.CancelledAt = &at
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// recalculateTotal re-sums all line totals. Sum over zero lines is 0.
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Details {
		total = total.Add(o.Details[idx].LineTotal)
	}
	o.TotalAmount = total.Round(2)
}

// DetailCount returns the number of lines in the order
func (o *Order) DetailCount() int {
	return len(o.Details)
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// GetDetail returns a line by its ID
func (o *Order) GetDetail(detailID int64) *Detail {
	for idx := range o.Details {
		if o.Details[idx].ID == detailID {
			return &o.Details[idx]
		}
	}
	return nil
}
