package catalog

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

// Repository persists suppliers and the category tree.
//
// Both entities detach rather than cascade on delete: removing a supplier
// nulls product.supplier_id, removing a category nulls its children's
// parent_id and drops the product links. The schema declares all of it; the
// repository classifies the outcomes.
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

// CreateSupplier inserts a supplier.
func (r *Repository) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*models.Supplier, error) {
	if err := validate.Struct("supplier", input); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		ID:    uuid.New(),
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := r.DB(ctx).Create(supplier).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "supplier")
	}
	return supplier, nil
}

// GetSupplier loads one supplier by id.
func (r *Repository) GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.DB(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "supplier")
	}
	return &supplier, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.DB(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, db.ClassifyReadError(err, "supplier")
	}
	return suppliers, nil
}

// UpdateSupplier applies the non-nil fields of input.
func (r *Repository) UpdateSupplier(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*models.Supplier, error) {
	if err := validate.Struct("supplier", input); err != nil {
		return nil, err
	}

	var supplier models.Supplier
	if err := r.DB(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "supplier")
	}
	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if err := r.DB(ctx).Save(&supplier).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "supplier")
	}
	return &supplier, nil
}

// DeleteSupplier removes the supplier. Its products survive with
// supplier_id nulled.
func (r *Repository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "supplier")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return nil
}

// CreateCategory inserts a category, optionally under an existing parent.
// A missing parent surfaces as INVALID_REFERENCE.
func (r *Repository) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if err := validate.Struct("category", input); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:       uuid.New(),
		Name:     input.Name,
		ParentID: input.ParentID,
	}
	if err := r.DB(ctx).Create(category).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "category")
	}
	return category, nil
}

// GetCategory loads one category with its direct children.
func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Preload("Children").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "category")
	}
	return &category, nil
}

// ListChildren returns the direct children of a category, name order.
func (r *Repository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB(ctx).
		Where("parent_id = ?", parentID).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "category")
	}
	return categories, nil
}

// ListRootCategories returns the categories without a parent, with their
// direct children preloaded.
func (r *Repository) ListRootCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB(ctx).
		Preload("Children").
		Where("parent_id IS NULL").
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "category")
	}
	return categories, nil
}

// UpdateCategory renames and/or reparents a category. Passing a ParentID of
// uuid.Nil detaches it to the root. A category cannot become its own parent.
func (r *Repository) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	if err := validate.Struct("category", input); err != nil {
		return nil, err
	}
	if input.ParentID != nil && *input.ParentID == id {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "category",
			Field:  "parent_id",
			Rule:   "must not reference itself",
		})
	}

	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "category")
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.ParentID != nil {
		if *input.ParentID == uuid.Nil {
			category.ParentID = nil
		} else {
			parent := *input.ParentID
			category.ParentID = &parent
		}
	}
	if err := r.DB(ctx).Save(&category).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "category")
	}
	return &category, nil
}

// DeleteCategory removes the category. Children are reattached to the root
// and product links are dropped by the schema.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "category")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}
