package models

import (
	"math"
	"time"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Terminal reports whether no further status change is accepted. Cancelled
// and delivered orders stay where they are.
func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderDelivered
}

// PaymentStatus is the closed set of payment outcomes.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// NormalizePaymentStatus maps a provider-reported status onto the known set.
// Unrecognized values fall back to paid. Known anomaly, kept pending product
// clarification: a garbled webhook marks the order as paid.
func NormalizePaymentStatus(reported string) PaymentStatus {
	s := PaymentStatus(reported)
	if s.Valid() {
		return s
	}
	return PaymentPaid
}

type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	TotalAmount     float64        `json:"total_amount"`
	Discount        float64        `gorm:"default:0" json:"discount"`
	Status          OrderStatus    `gorm:"type:varchar(32);default:'pending';index" json:"status"`
	ShippingAddress map[string]any `gorm:"serializer:json" json:"shipping_address,omitempty"`
	PaymentStatus   PaymentStatus  `gorm:"type:varchar(32);default:'unpaid'" json:"payment_status"`
	TrackingID      string         `gorm:"type:varchar(64);default:null" json:"tracking_id,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// Subtotal sums the snapshotted line totals.
func (o *Order) Subtotal() float64 {
	sum := 0.0
	for _, it := range o.Items {
		sum += it.LineTotal()
	}
	return Round2(sum)
}

// Round2 rounds a monetary amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
