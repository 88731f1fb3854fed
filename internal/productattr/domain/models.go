package domain

import (
	"time"

	"github.com/rackworks/catalog/internal/typedvalue"
)

// ProductAttributeValue stores one attribute value for a product. Exactly
// one typed slot is non-null per row; which one is decided by the attribute
// definition's data_type at encode time.
type ProductAttributeValue struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	ProductID             int64      `gorm:"index:ix_product_attribute_values_product" json:"product_id"`
	ProductTemplateID     int64      `json:"product_template_id"`
	AttributeDefinitionID int64      `gorm:"index:ix_product_attribute_values_attribute" json:"attribute_definition_id"`
	ValueString           *string    `json:"value_string,omitempty"`
	ValueText             *string    `json:"value_text,omitempty"`
	ValueInteger          *int64     `json:"value_integer,omitempty"`
	ValueDecimal          *float64   `json:"value_decimal,omitempty"`
	ValueBoolean          *bool      `json:"value_boolean,omitempty"`
	ValueJSON             *string    `json:"value_json,omitempty"`
	Active                bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	DeletedAt             *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}

// Slots views the row through the typed-value codec.
func (v ProductAttributeValue) Slots() typedvalue.SlotSet {
	return typedvalue.SlotSet{
		String:  v.ValueString,
		Text:    v.ValueText,
		Integer: v.ValueInteger,
		Decimal: v.ValueDecimal,
		Boolean: v.ValueBoolean,
		JSON:    v.ValueJSON,
	}
}

// SetSlots writes the codec's slot set back into the row's columns.
func (v *ProductAttributeValue) SetSlots(slots typedvalue.SlotSet) {
	v.ValueString = slots.String
	v.ValueText = slots.Text
	v.ValueInteger = slots.Integer
	v.ValueDecimal = slots.Decimal
	v.ValueBoolean = slots.Boolean
	v.ValueJSON = slots.JSON
}
