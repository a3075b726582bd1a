package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is authored against a product. The author reference survives as
// null when the customer is deleted; the review itself dies with the
// product.
type Review struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	Rating     int        `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment    *string    `gorm:"column:comment"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
