package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput carries the fields for a new product and its initial
// stock record. Price and weight bounds are enforced by the schema.
type CreateProductInput struct {
	SKU          string          `json:"sku" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Weight       decimal.Decimal `json:"weight"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	CategoryIDs  []uuid.UUID     `json:"category_ids"`
}

// UpdateProductInput updates a product. Nil fields are left untouched.
type UpdateProductInput struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1"`
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Weight      *decimal.Decimal `json:"weight"`
	SupplierID  *uuid.UUID       `json:"supplier_id"`
	IsActive    *bool            `json:"is_active"`
}
