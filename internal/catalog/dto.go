package catalog

import "github.com/google/uuid"

// CreateSupplierInput carries the fields for a new supplier.
type CreateSupplierInput struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,min=7"`
}

// UpdateSupplierInput updates a supplier. Nil fields are left untouched.
type UpdateSupplierInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,min=7"`
}

// CreateCategoryInput creates a category, optionally under a parent.
type CreateCategoryInput struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryInput renames and/or reparents a category. A non-nil
// ParentID pointing at uuid.Nil moves the category to the root.
type UpdateCategoryInput struct {
	Name     *string    `json:"name" validate:"omitempty,min=1"`
	ParentID *uuid.UUID `json:"parent_id"`
}
