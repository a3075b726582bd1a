package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier supplies products. Deleting a supplier detaches its products
// rather than deleting them.
type Supplier struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     *string   `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone"`
	Products  []Product `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
