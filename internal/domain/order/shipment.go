package order

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// ShipmentStatus represents the delivery progress of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// IsValid checks if the status is a known shipment status
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusShipped, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// Shipment represents shipment details for an order
type Shipment struct {
	shared.BaseEntity
	OrderID        int64 `gorm:"not null;index"`
	ShipmentDate   *time.Time
	DeliveryDate   *time.Time
	ShipmentStatus ShipmentStatus `gorm:"size:20;not null"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipment"
}

// NewShipment creates a new shipment record. The delivery date, if set,
// must not precede the shipment date.
func NewShipment(orderID int64, status ShipmentStatus, shipmentDate, deliveryDate *time.Time) (*Shipment, error) {
	if orderID <= 0 {
		return nil, shared.NewMissingReference("shipment", "order_id")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainRange("shipment", "shipment_status", "Unknown shipment status")
	}
	if deliveryDate != nil && status != ShipmentStatusDelivered {
		return nil, shared.NewDomainRange("shipment", "delivery_date", "Delivery date requires delivered status")
	}
	if deliveryDate != nil && shipmentDate == nil {
		return nil, shared.NewDomainRange("shipment", "delivery_date", "Delivery date requires a shipment date")
	}
	if deliveryDate != nil && deliveryDate.Before(*shipmentDate) {
		return nil, shared.NewDomainRange("shipment", "delivery_date", "Delivery date cannot precede shipment date")
	}

	return &Shipment{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        orderID,
		ShipmentDate:   shipmentDate,
		DeliveryDate:   deliveryDate,
		ShipmentStatus: status,
	}, nil
}
