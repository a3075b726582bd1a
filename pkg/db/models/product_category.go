package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory links a product to a category. The composite primary key
// makes each (product, category) pair unique.
type ProductCategory struct {
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
