package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/enums"
	"github.com/dukamart/dukamart-backend/pkg/logger"
)

// Fixed identifiers keep the dataset idempotent: re-running the seeder
// inserts nothing new.
var (
	supplierID      = uuid.MustParse("1f8b6a52-0001-4000-8000-000000000001")
	categoryRootID  = uuid.MustParse("1f8b6a52-0002-4000-8000-000000000001")
	categoryChildID = uuid.MustParse("1f8b6a52-0002-4000-8000-000000000002")
	productPhoneID  = uuid.MustParse("1f8b6a52-0003-4000-8000-000000000001")
	productBudsID   = uuid.MustParse("1f8b6a52-0003-4000-8000-000000000002")
	customerID      = uuid.MustParse("1f8b6a52-0004-4000-8000-000000000001")
	addressID       = uuid.MustParse("1f8b6a52-0005-4000-8000-000000000001")
	orderID         = uuid.MustParse("1f8b6a52-0006-4000-8000-000000000001")
	itemPhoneID     = uuid.MustParse("1f8b6a52-0007-4000-8000-000000000001")
	itemBudsID      = uuid.MustParse("1f8b6a52-0007-4000-8000-000000000002")
	paymentID       = uuid.MustParse("1f8b6a52-0008-4000-8000-000000000001")
	couponID        = uuid.MustParse("1f8b6a52-0009-4000-8000-000000000001")
	reviewID        = uuid.MustParse("1f8b6a52-000a-4000-8000-000000000001")
)

// Seeder loads a small demo dataset covering every table, in dependency
// order so the reference checks always hold.
type Seeder struct {
	db   *gorm.DB
	logg *logger.Logger
}

func New(db *gorm.DB, logg *logger.Logger) *Seeder {
	return &Seeder{db: db, logg: logg}
}

// Run inserts the dataset inside one transaction. Rows that already exist
// are skipped, so running it twice is harmless. Failures are aggregated so
// one broken fixture does not hide the rest.
func (s *Seeder) Run(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var errs error
		for _, step := range s.steps() {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(step.row).Error; err != nil {
				errs = multierr.Append(errs, fmt.Errorf("seed %s: %w", step.name, err))
			}
		}
		return errs
	})
	if err != nil {
		return err
	}
	ctx = s.logg.WithCustomerID(ctx, customerID.String())
	ctx = s.logg.WithOrderID(ctx, orderID.String())
	ctx = s.logg.WithProductID(ctx, productPhoneID.String())
	s.logg.Info(ctx, "seed data loaded")
	return nil
}

type step struct {
	name string
	row  any
}

func (s *Seeder) steps() []step {
	gender := enums.GenderFemale
	email := "orders@riftvalleytraders.co.ke"
	comment := "Battery lasts the whole week."
	expiry := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	return []step{
		{"supplier", &models.Supplier{
			ID:    supplierID,
			Name:  "Rift Valley Traders",
			Email: &email,
		}},
		{"category root", &models.Category{
			ID:   categoryRootID,
			Name: "Electronics",
		}},
		{"category child", &models.Category{
			ID:       categoryChildID,
			Name:     "Phones",
			ParentID: &categoryRootID,
		}},
		{"product phone", &models.Product{
			ID:         productPhoneID,
			SKU:        "PHN-001",
			Name:       "Duka Feature Phone",
			Price:      decimal.RequireFromString("2490.00"),
			Weight:     decimal.RequireFromString("0.180"),
			SupplierID: &supplierID,
			IsActive:   true,
		}},
		{"product buds", &models.Product{
			ID:         productBudsID,
			SKU:        "AUD-001",
			Name:       "Wireless Earbuds",
			Price:      decimal.RequireFromString("1150.00"),
			Weight:     decimal.RequireFromString("0.050"),
			SupplierID: &supplierID,
			IsActive:   true,
		}},
		{"inventory phone", &models.Inventory{
			ProductID:    productPhoneID,
			Quantity:     120,
			ReorderLevel: 20,
		}},
		{"inventory buds", &models.Inventory{
			ProductID:    productBudsID,
			Quantity:     45,
			ReorderLevel: 10,
		}},
		{"product category phone", &models.ProductCategory{
			ProductID:  productPhoneID,
			CategoryID: categoryChildID,
		}},
		{"product category buds", &models.ProductCategory{
			ProductID:  productBudsID,
			CategoryID: categoryRootID,
		}},
		{"customer", &models.Customer{
			ID:        customerID,
			FirstName: "Alice",
			LastName:  "Wanjiru",
			Email:     "alice@example.com",
		}},
		{"profile", &models.Profile{
			CustomerID:    customerID,
			Gender:        &gender,
			LoyaltyPoints: 120,
		}},
		{"address", &models.Address{
			ID:         addressID,
			CustomerID: customerID,
			Label:      "home",
			Line1:      "12 Moi Avenue",
			City:       "Nairobi",
			Country:    "KE",
			IsDefault:  true,
		}},
		{"order", &models.Order{
			ID:                orderID,
			CustomerID:        customerID,
			ShippingAddressID: &addressID,
			BillingAddressID:  &addressID,
			Status:            enums.OrderStatusProcessing,
			TotalAmount:       decimal.RequireFromString("4790.00"),
		}},
		{"order item phone", &models.OrderItem{
			ID:        itemPhoneID,
			OrderID:   orderID,
			ProductID: productPhoneID,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("2490.00"),
		}},
		{"order item buds", &models.OrderItem{
			ID:        itemBudsID,
			OrderID:   orderID,
			ProductID: productBudsID,
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("1150.00"),
		}},
		{"payment", &models.Payment{
			ID:      paymentID,
			OrderID: orderID,
			Method:  enums.PaymentMethodMpesa,
			Status:  enums.PaymentStatusCompleted,
			Amount:  decimal.RequireFromString("4790.00"),
		}},
		{"coupon", &models.Coupon{
			ID:            couponID,
			Code:          "KARIBU10",
			DiscountType:  enums.DiscountTypePercent,
			DiscountValue: decimal.NewFromInt(10),
			ExpiresAt:     &expiry,
			IsActive:      true,
		}},
		{"order coupon", &models.OrderCoupon{
			OrderID:  orderID,
			CouponID: couponID,
		}},
		{"review", &models.Review{
			ID:         reviewID,
			ProductID:  productPhoneID,
			CustomerID: &customerID,
			Rating:     5,
			Comment:    &comment,
		}},
	}
}
