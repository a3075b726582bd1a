package coupon

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/internal/repo"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/enums"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
	"github.com/dukamart/dukamart-backend/pkg/validate"
)

// CreateCouponInput carries the fields for a new discount code.
type CreateCouponInput struct {
	Code          string          `json:"code" validate:"required,min=3"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	ExpiresAt     *time.Time      `json:"expires_at"`
}

// Repository persists discount coupons. Codes are unique; attaching
// coupons to orders is the order repository's job.
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

// CreateCoupon inserts an active coupon. A percentage discount over 100
// is rejected here; the schema only enforces non-negativity.
func (r *Repository) CreateCoupon(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	if err := validate.Struct("coupon", input); err != nil {
		return nil, err
	}
	discountType, err := enums.ParseDiscountType(input.DiscountType)
	if err != nil {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "coupon", Field: "discount_type", Rule: "unknown type",
		})
	}
	if input.DiscountValue.IsNegative() {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "coupon", Field: "discount_value", Rule: "must not be negative",
		})
	}
	if discountType == enums.DiscountTypePercent && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "coupon", Field: "discount_value", Rule: "percentage must not exceed 100",
		})
	}

	coupon := &models.Coupon{
		ID:            uuid.New(),
		Code:          input.Code,
		DiscountType:  discountType,
		DiscountValue: input.DiscountValue,
		ExpiresAt:     input.ExpiresAt,
		IsActive:      true,
	}
	if err := r.DB(ctx).Create(coupon).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "coupon")
	}
	return coupon, nil
}

// GetCoupon loads one coupon by id.
func (r *Repository) GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "coupon")
	}
	return &coupon, nil
}

// GetByCode loads one coupon by its code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, db.ClassifyReadError(err, "coupon")
	}
	return &coupon, nil
}

// Deactivate flips a coupon inactive without touching its attachments.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return db.ClassifyWriteError(res.Error, "coupon")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}
	return nil
}

// DeactivateExpired flips every active coupon whose expiry has passed and
// returns how many were touched.
func (r *Repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Coupon{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("is_active", false)
	if res.Error != nil {
		return 0, db.ClassifyWriteError(res.Error, "coupon")
	}
	return res.RowsAffected, nil
}

// DeleteCoupon removes the coupon; its order attachments go with it while
// the orders themselves survive.
func (r *Repository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "coupon")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}
	return nil
}
