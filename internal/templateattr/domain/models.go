package domain

import "time"

// TemplateAttribute binds an attribute definition to a product template.
// SortOrder is a zero-padded string so lexicographic ordering matches
// numeric ordering up to four digits.
type TemplateAttribute struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	ProductTemplateID     int64      `gorm:"index:ix_template_attributes_template" json:"product_template_id"`
	AttributeDefinitionID int64      `gorm:"index:ix_template_attributes_attribute" json:"attribute_definition_id"`
	Required              bool       `gorm:"column:is_required" json:"is_required"`
	OverviewDisplay       bool       `gorm:"column:is_overview_display" json:"is_overview_display"`
	SortOrder             string     `gorm:"type:char(4)" json:"sort_order"`
	Active                bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	DeletedAt             *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (TemplateAttribute) TableName() string {
	return "template_attributes"
}
