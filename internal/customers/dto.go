package customer

import (
	"time"
)

// CreateCustomerInput holds the payload to create a customer, optionally
// with its profile and initial addresses in the same transaction.
type CreateCustomerInput struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty"`

	Profile   *ProfileInput  `json:"profile,omitempty"`
	Addresses []AddressInput `json:"addresses,omitempty" validate:"dive"`
}

// UpdateCustomerInput holds optional mutation values for a customer.
type UpdateCustomerInput struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
}

// ProfileInput captures the one-to-one profile extension.
type ProfileInput struct {
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Gender        *string    `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	LoyaltyPoints int        `json:"loyalty_points" validate:"gte=0"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
}

// AddressInput captures a labeled customer address.
type AddressInput struct {
	Label      string  `json:"label" validate:"required"`
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	Region     *string `json:"region,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    string  `json:"country" validate:"required,len=2"`
	IsDefault  bool    `json:"is_default"`
}
