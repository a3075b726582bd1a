package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a name-unique node in a self-referential tree. Deleting a
// parent detaches its children (parent_id nulled), never cascades.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null;uniqueIndex:uq_categories_name"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Parent    *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Children  []Category `gorm:"foreignKey:ParentID"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
