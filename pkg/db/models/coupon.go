package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukamart/dukamart-backend/pkg/enums"
)

// Coupon is a code-unique discount. Order attachments cascade away with
// either side.
type Coupon struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string             `gorm:"column:code;not null;uniqueIndex:uq_coupons_code"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;type:text;not null"`
	DiscountValue decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2);not null;check:discount_value >= 0"`
	ExpiresAt     *time.Time         `gorm:"column:expires_at"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	Orders        []OrderCoupon      `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
