package checkout

import (
	"errors"
	"time"

	"github.com/FelixBraun92/PawPantry/app/models"
)

// Business failures surfaced by the order pipeline. Controllers map these
// onto HTTP statuses.
var (
	ErrInvalidProduct      = errors.New("invalid product")
	ErrOutOfStock          = errors.New("insufficient stock")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponNotYetValid   = errors.New("coupon not yet valid")
	ErrCouponExpired       = errors.New("coupon expired")
	ErrCouponExhausted     = errors.New("coupon usage exceeded")
	ErrCouponNotApplicable = errors.New("coupon not applicable to products")
	ErrInvalidTransition   = errors.New("cannot cancel this order")
	ErrOrderNotFound       = errors.New("order not found")
)

// LineInput is one requested cart position.
type LineInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput carries everything needed to commit a new order.
type CreateOrderInput struct {
	Items           []LineInput    `json:"items" validate:"required,min=1,dive"`
	ShippingAddress map[string]any `json:"shipping_address,omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty"`
}

// InvoiceLine is a derived per-item invoice row.
type InvoiceLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Invoice is derived from a persisted order; the invoice number is
// deterministic from the order id.
type Invoice struct {
	InvoiceNumber string               `json:"invoice_number"`
	OrderID       uint                 `json:"order_id"`
	UserID        uint                 `json:"user_id"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
	Items         []InvoiceLine        `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Discount      float64              `json:"discount"`
	Total         float64              `json:"total"`
}
