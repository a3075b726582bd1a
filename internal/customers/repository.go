package customer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/internal/repo"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/enums"
	"github.com/dukamart/dukamart-backend/pkg/validate"
)

// Repository persists customers and their owned profile/address rows.
//
// Deletion semantics: orders block a customer delete (surfaced as
// DELETE_BLOCKED); the profile and addresses cascade away; reviews keep the
// row with their author reference nulled. All of that is declared in the
// schema, the repository's job is to run the delete atomically and classify
// the outcome.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateCustomer inserts the customer with its optional profile and initial
// addresses in one transaction.
func (r *Repository) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if err := validate.Struct("customer", input); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:        uuid.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	err := r.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return db.ClassifyWriteError(err, "customer")
		}
		if input.Profile != nil {
			profile := profileFromInput(customer.ID, *input.Profile)
			if err := tx.Create(profile).Error; err != nil {
				return db.ClassifyWriteError(err, "profile")
			}
			customer.Profile = profile
		}
		for _, addr := range input.Addresses {
			address := addressFromInput(customer.ID, addr)
			if err := tx.Create(address).Error; err != nil {
				return db.ClassifyWriteError(err, "address")
			}
			customer.Addresses = append(customer.Addresses, *address)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer loads the customer with its profile and addresses.
func (r *Repository) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB(ctx).
		Preload("Profile").
		Preload("Addresses").
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "customer")
	}
	return &customer, nil
}

// UpdateCustomer applies the provided fields to an existing customer.
func (r *Repository) UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*models.Customer, error) {
	if err := validate.Struct("customer", input); err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := r.DB(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "customer")
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}

	if err := r.DB(ctx).Save(&customer).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "customer")
	}
	return &customer, nil
}

// DeleteCustomer removes the customer. The schema cascades the profile and
// addresses, nulls review author references, and rejects the delete while
// any order still references the customer.
func (r *Repository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return db.ClassifyDeleteError(result.Error, "customer")
	}
	if result.RowsAffected == 0 {
		return db.ClassifyReadError(gorm.ErrRecordNotFound, "customer")
	}
	return nil
}

// UpsertProfile creates or replaces the customer's profile row.
func (r *Repository) UpsertProfile(ctx context.Context, customerID uuid.UUID, input ProfileInput) (*models.Profile, error) {
	if err := validate.Struct("profile", input); err != nil {
		return nil, err
	}

	profile := profileFromInput(customerID, input)
	err := r.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.Profile{}).Error; err != nil {
			return db.ClassifyDeleteError(err, "profile")
		}
		if err := tx.Create(profile).Error; err != nil {
			return db.ClassifyWriteError(err, "profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// AddAddress attaches a new address to the customer.
func (r *Repository) AddAddress(ctx context.Context, customerID uuid.UUID, input AddressInput) (*models.Address, error) {
	if err := validate.Struct("address", input); err != nil {
		return nil, err
	}

	address := addressFromInput(customerID, input)
	if err := r.DB(ctx).Create(address).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "address")
	}
	return address, nil
}

// SetDefaultAddress marks one address as default and clears the flag on the
// customer's other addresses in the same transaction. This is a convenience:
// the schema itself never guarantees a single default.
func (r *Repository) SetDefaultAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	return r.Tx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Address{}).
			Where("id = ? AND customer_id = ?", addressID, customerID).
			Update("is_default", true)
		if result.Error != nil {
			return db.ClassifyWriteError(result.Error, "address")
		}
		if result.RowsAffected == 0 {
			return db.ClassifyReadError(gorm.ErrRecordNotFound, "address")
		}
		err := tx.Model(&models.Address{}).
			Where("customer_id = ? AND id <> ?", customerID, addressID).
			Update("is_default", false).Error
		if err != nil {
			return db.ClassifyWriteError(err, "address")
		}
		return nil
	})
}

// DeleteAddress removes an address; order references to it are nulled by the
// schema, never blocked.
func (r *Repository) DeleteAddress(ctx context.Context, addressID uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.Address{}, "id = ?", addressID)
	if result.Error != nil {
		return db.ClassifyDeleteError(result.Error, "address")
	}
	if result.RowsAffected == 0 {
		return db.ClassifyReadError(gorm.ErrRecordNotFound, "address")
	}
	return nil
}

func profileFromInput(customerID uuid.UUID, input ProfileInput) *models.Profile {
	profile := &models.Profile{
		CustomerID:    customerID,
		BirthDate:     input.BirthDate,
		LoyaltyPoints: input.LoyaltyPoints,
		AvatarURL:     input.AvatarURL,
	}
	if input.Gender != nil {
		gender := enums.Gender(*input.Gender)
		profile.Gender = &gender
	}
	return profile
}

func addressFromInput(customerID uuid.UUID, input AddressInput) *models.Address {
	return &models.Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Label:      input.Label,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		Region:     input.Region,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
	}
}
