package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

// OrderItem is one line of an order. LineTotal is a derived value: it is
// recomputed from Quantity and UnitPrice on every save and additionally
// CHECK-locked in the schema, so it can never drift from its inputs.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;check:unit_price >= 0"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave validates the numeric bounds and recomputes the derived line
// total in the same write.
func (i *OrderItem) BeforeSave(_ *gorm.DB) error {
	if i.Quantity <= 0 {
		return pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "order_item", Field: "quantity", Rule: "must be positive",
		})
	}
	if i.UnitPrice.IsNegative() {
		return pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "order_item", Field: "unit_price", Rule: "must not be negative",
		})
	}
	i.LineTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return nil
}
