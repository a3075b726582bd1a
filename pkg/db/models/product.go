package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the sellable catalog entry. Its inventory row, category links
// and reviews live and die with it; order items referencing it block its
// deletion.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string            `gorm:"column:sku;not null;uniqueIndex:uq_products_sku"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null;check:price >= 0"`
	Weight      decimal.Decimal   `gorm:"column:weight;type:numeric(10,3);not null;default:0;check:weight >= 0"`
	SupplierID  *uuid.UUID        `gorm:"column:supplier_id;type:uuid"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	Inventory   *Inventory        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Categories  []ProductCategory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews     []Review          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	OrderItems  []OrderItem       `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
