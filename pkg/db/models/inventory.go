package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is the one-to-one stock record of a product.
type Inventory struct {
	ProductID     uuid.UUID  `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity      int        `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	ReorderLevel  int        `gorm:"column:reorder_level;not null;default:0;check:reorder_level >= 0"`
	LastRestockAt *time.Time `gorm:"column:last_restock_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table singular-stem plural ("inventories" reads badly
// in SQL and in the migration).
func (Inventory) TableName() string {
	return "inventory_items"
}
