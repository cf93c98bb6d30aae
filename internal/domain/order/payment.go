package order

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// IsValid checks if the method is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPaypal,
		PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment represents a payment recorded against an order
type Payment struct {
	shared.BaseEntity
	OrderID       int64           `gorm:"not null;index"`
	PaymentDate   time.Time       `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payment"
}

// NewPayment creates a new payment record
func NewPayment(orderID int64, amount decimal.Decimal, method PaymentMethod, paymentDate time.Time) (*Payment, error) {
	if orderID <= 0 {
		return nil, shared.NewMissingReference("payment", "order_id")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainRange("payment", "amount", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainRange("payment", "payment_method", "Unknown payment method")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		PaymentDate:   paymentDate,
		Amount:        amount.Round(2),
		PaymentMethod: method,
	}, nil
}
