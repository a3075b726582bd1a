package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukamart/dukamart-backend/pkg/enums"
)

// Order belongs to exactly one customer and blocks that customer's deletion.
// Address references are soft: deleting an address nulls them. TotalAmount
// is caller-supplied and is not derived from the item line totals.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID        uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	ShippingAddressID *uuid.UUID        `gorm:"column:shipping_address_id;type:uuid"`
	BillingAddressID  *uuid.UUID        `gorm:"column:billing_address_id;type:uuid"`
	Status            enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalAmount       decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null;default:0;check:total_amount >= 0"`
	PlacedAt          time.Time         `gorm:"column:placed_at;autoCreateTime"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments          []Payment         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Coupons           []OrderCoupon     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
