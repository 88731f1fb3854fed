package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AttributeDefinition is a reusable typed field schema attachable to
// product templates.
type AttributeDefinition struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Key         string  `json:"key" gorm:"type:text;not null;uniqueIndex:ux_attribute_definitions_key"`
	DisplayName string  `json:"display_name" gorm:"type:text;not null"`
	DataType    string  `json:"data_type" gorm:"type:text;not null"`
	Unit        *string `json:"unit,omitempty" gorm:"type:text"`

	DefaultValue    *string                     `json:"default_value,omitempty" gorm:"type:text"`
	ValidationRules datatypes.JSONMap           `json:"validation_rules,omitempty" gorm:"type:jsonb"`
	Tags            datatypes.JSONSlice[string] `json:"tags,omitempty" gorm:"type:jsonb"`
	ListOptions     datatypes.JSONSlice[string] `json:"list_options,omitempty" gorm:"type:jsonb"`

	Active    bool       `json:"active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (AttributeDefinition) TableName() string { return "attribute_definitions" }
