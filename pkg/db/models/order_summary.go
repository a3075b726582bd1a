package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukamart/dukamart-backend/pkg/enums"
)

// OrderSummary is the read-only projection backed by the order_summaries
// view: one row per order with the customer's display name and the item
// count aggregated in.
type OrderSummary struct {
	OrderID      uuid.UUID         `gorm:"column:order_id;primaryKey"`
	CustomerID   uuid.UUID         `gorm:"column:customer_id"`
	CustomerName string            `gorm:"column:customer_name"`
	PlacedAt     time.Time         `gorm:"column:placed_at"`
	Status       enums.OrderStatus `gorm:"column:status"`
	TotalAmount  decimal.Decimal   `gorm:"column:total_amount"`
	ItemCount    int               `gorm:"column:item_count"`
}

func (OrderSummary) TableName() string {
	return "order_summaries"
}
