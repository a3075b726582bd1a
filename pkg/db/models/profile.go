package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukamart/dukamart-backend/pkg/enums"
)

// Profile is the one-to-one extension of a customer.
type Profile struct {
	CustomerID    uuid.UUID     `gorm:"column:customer_id;type:uuid;primaryKey"`
	BirthDate     *time.Time    `gorm:"column:birth_date;type:date"`
	Gender        *enums.Gender `gorm:"column:gender;type:text"`
	LoyaltyPoints int           `gorm:"column:loyalty_points;not null;default:0;check:loyalty_points >= 0"`
	AvatarURL     *string       `gorm:"column:avatar_url"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
