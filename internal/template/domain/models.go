package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ProductTemplate groups attribute bindings and intrinsic properties for one
// category of product.
type ProductTemplate struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"type:text;not null"`
	GroupID *int64 `json:"group_id,omitempty" gorm:"column:group_id"`

	DefaultProperties datatypes.JSONSlice[string] `json:"default_properties,omitempty" gorm:"type:jsonb"`
	FilterProperties  datatypes.JSONSlice[string] `json:"filter_properties,omitempty" gorm:"type:jsonb"`
	FilterAttributes  datatypes.JSONSlice[int64]  `json:"filter_attributes,omitempty" gorm:"type:jsonb"`

	Active    bool       `json:"active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (ProductTemplate) TableName() string { return "product_templates" }
