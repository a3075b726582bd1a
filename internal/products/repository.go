package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/internal/repo"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
	"github.com/dukamart/dukamart-backend/pkg/validate"
)

// Repository persists products, their one-to-one stock records and their
// category links.
//
// Deletion semantics: order items referencing a product block its delete
// (surfaced as DELETE_BLOCKED); the inventory row, category links and
// reviews cascade away; the supplier reference on surviving rows is never
// touched here.
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

// CreateProduct inserts the product, its stock record and any category
// links in one transaction.
func (r *Repository) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validate.Struct("product", input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Weight:      input.Weight,
		SupplierID:  input.SupplierID,
		IsActive:    true,
	}

	err := r.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return db.ClassifyWriteError(err, "product")
		}
		inventory := &models.Inventory{
			ProductID:    product.ID,
			Quantity:     input.Quantity,
			ReorderLevel: input.ReorderLevel,
		}
		if err := tx.Create(inventory).Error; err != nil {
			return db.ClassifyWriteError(err, "inventory")
		}
		product.Inventory = inventory
		for _, categoryID := range input.CategoryIDs {
			link := &models.ProductCategory{ProductID: product.ID, CategoryID: categoryID}
			if err := tx.Create(link).Error; err != nil {
				return db.ClassifyWriteError(err, "product_category")
			}
			product.Categories = append(product.Categories, *link)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct loads the product with its stock record and category links.
func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Inventory").
		Preload("Categories").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "product")
	}
	return &product, nil
}

// GetBySKU loads the product carrying the given SKU.
func (r *Repository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Inventory").
		First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "product")
	}
	return &product, nil
}

// UpdateProduct applies the non-nil fields of input.
func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if err := validate.Struct("product", input); err != nil {
		return nil, err
	}

	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "product")
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.SupplierID != nil {
		product.SupplierID = input.SupplierID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := r.DB(ctx).Save(&product).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "product")
	}
	return &product, nil
}

// DeleteProduct removes the product and, through the schema, its stock
// record, category links and reviews. Order items block the delete.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// AdjustInventory changes the stock quantity by delta in a single atomic
// statement. Driving the quantity below zero surfaces as
// VALUE_OUT_OF_RANGE from the schema check.
func (r *Repository) AdjustInventory(ctx context.Context, productID uuid.UUID, delta int) (*models.Inventory, error) {
	res := r.DB(ctx).
		Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, db.ClassifyWriteError(res.Error, "inventory")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}

	var inventory models.Inventory
	if err := r.DB(ctx).First(&inventory, "product_id = ?", productID).Error; err != nil {
		return nil, db.ClassifyReadError(err, "inventory")
	}
	return &inventory, nil
}

// RestockInventory sets the stock quantity and stamps last_restock_at.
func (r *Repository) RestockInventory(ctx context.Context, productID uuid.UUID, quantity int) (*models.Inventory, error) {
	if quantity < 0 {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "inventory",
			Field:  "quantity",
			Rule:   "must not be negative",
		})
	}

	now := time.Now().UTC()
	res := r.DB(ctx).
		Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"quantity":        quantity,
			"last_restock_at": now,
		})
	if res.Error != nil {
		return nil, db.ClassifyWriteError(res.Error, "inventory")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}

	var inventory models.Inventory
	if err := r.DB(ctx).First(&inventory, "product_id = ?", productID).Error; err != nil {
		return nil, db.ClassifyReadError(err, "inventory")
	}
	return &inventory, nil
}

// AssignCategory links the product to a category. Linking the same pair
// twice surfaces as DUPLICATE_KEY; a missing product or category as
// INVALID_REFERENCE.
func (r *Repository) AssignCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	link := &models.ProductCategory{ProductID: productID, CategoryID: categoryID}
	if err := r.DB(ctx).Create(link).Error; err != nil {
		return db.ClassifyWriteError(err, "product_category")
	}
	return nil
}

// UnassignCategory removes the product-category link.
func (r *Repository) UnassignCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	res := r.DB(ctx).
		Where("product_id = ? AND category_id = ?", productID, categoryID).
		Delete(&models.ProductCategory{})
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "product_category")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product category link not found")
	}
	return nil
}

// ListByCategory returns the products linked to a category, stock records
// included.
func (r *Repository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Preload("Inventory").
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", categoryID).
		Order("products.name").
		Find(&products).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "product")
	}
	return products, nil
}

// ListBelowReorderLevel returns active products whose stock has fallen to
// or below their reorder level.
func (r *Repository) ListBelowReorderLevel(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Preload("Inventory").
		Joins("JOIN inventory_items inv ON inv.product_id = products.id").
		Where("products.is_active = ? AND inv.quantity <= inv.reorder_level", true).
		Order("products.name").
		Find(&products).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "product")
	}
	return products, nil
}
