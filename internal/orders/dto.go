package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderInput creates an order with its initial lines and any
// up-front payments. TotalAmount is taken as given; it is not derived from
// the lines.
type CreateOrderInput struct {
	CustomerID        uuid.UUID         `json:"customer_id" validate:"required"`
	ShippingAddressID *uuid.UUID        `json:"shipping_address_id"`
	BillingAddressID  *uuid.UUID        `json:"billing_address_id"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	Items             []OrderItemInput  `json:"items" validate:"required,min=1,dive"`
	Payments          []AddPaymentInput `json:"payments" validate:"omitempty,dive"`
}

// AddPaymentInput records one tender against an order.
type AddPaymentInput struct {
	Method    string          `json:"method" validate:"required,oneof=card mpesa bank_transfer wallet cash_on_delivery"`
	Amount    decimal.Decimal `json:"amount"`
	Reference *string         `json:"reference"`
}
