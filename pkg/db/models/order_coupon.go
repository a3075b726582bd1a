package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderCoupon links a coupon to an order; the composite primary key rejects
// attaching the same coupon to the same order twice.
type OrderCoupon struct {
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	CouponID  uuid.UUID `gorm:"column:coupon_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
