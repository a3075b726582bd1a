package review

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/internal/repo"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
	"github.com/dukamart/dukamart-backend/pkg/validate"
)

// CreateReviewInput carries the fields for a new product review. The
// author is optional; an anonymous review simply has no customer.
type CreateReviewInput struct {
	ProductID  uuid.UUID  `json:"product_id" validate:"required"`
	CustomerID *uuid.UUID `json:"customer_id"`
	Rating     int        `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    *string    `json:"comment"`
}

// UpdateReviewInput updates a review. Nil fields are left untouched.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

// Repository persists product reviews.
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

// CreateReview inserts a review. The rating is bounded 1..5 both here and
// in the schema.
func (r *Repository) CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if err := validate.Struct("review", input); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New(),
		ProductID:  input.ProductID,
		CustomerID: input.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := r.DB(ctx).Create(review).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "review")
	}
	return review, nil
}

// GetReview loads one review by id.
func (r *Repository) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "review")
	}
	return &review, nil
}

// UpdateReview applies the non-nil fields of input.
func (r *Repository) UpdateReview(ctx context.Context, id uuid.UUID, input UpdateReviewInput) (*models.Review, error) {
	if err := validate.Struct("review", input); err != nil {
		return nil, err
	}

	var review models.Review
	if err := r.DB(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "review")
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = input.Comment
	}
	if err := r.DB(ctx).Save(&review).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "review")
	}
	return &review, nil
}

// DeleteReview removes one review.
func (r *Repository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

// ListForProduct returns a product's reviews, newest first.
func (r *Repository) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "review")
	}
	return reviews, nil
}

// AverageRating computes the mean rating of a product's reviews. A product
// with no reviews averages zero.
func (r *Repository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.DB(ctx).
		Model(&models.Review{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Scan(&avg).Error
	if err != nil {
		return 0, db.ClassifyReadError(err, "review")
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
