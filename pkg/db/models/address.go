package models

import (
	"time"

	"github.com/google/uuid"
)

// Address belongs to exactly one customer. IsDefault is advisory: nothing at
// the storage level stops two addresses of one customer from both carrying
// the flag.
type Address struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null"`
	Label      string    `gorm:"column:label;not null;default:'home'"`
	Line1      string    `gorm:"column:line1;not null"`
	Line2      *string   `gorm:"column:line2"`
	City       string    `gorm:"column:city;not null"`
	Region     *string   `gorm:"column:region"`
	PostalCode *string   `gorm:"column:postal_code"`
	Country    string    `gorm:"column:country;not null;default:'KE'"`
	IsDefault  bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
