package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukamart/dukamart-backend/pkg/enums"
)

// Payment records one tender against an order and is removed with it.
type Payment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	Method    enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	Status    enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null;check:amount >= 0"`
	Reference *string             `gorm:"column:reference"`
	PaidAt    *time.Time          `gorm:"column:paid_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
