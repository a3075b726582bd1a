package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the account that owns profiles, addresses, orders and reviews.
// Orders block customer deletion; profile and addresses follow it.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex:uq_customers_email"`
	Phone     *string   `gorm:"column:phone"`
	Profile   *Profile  `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Addresses []Address `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Orders    []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Reviews   []Review  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins first and last name with a single space, the display form
// used by the order summary read.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
