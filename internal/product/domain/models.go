package domain

import "time"

type Product struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	ProductTemplateID int64      `gorm:"index:ix_products_template" json:"product_template_id"`
	Name              string     `json:"name"`
	ScopeID           *int64     `json:"scope_id,omitempty"`
	ServiceID         *int64     `json:"service_id,omitempty"`
	ServiceTypeID     *int64     `json:"service_type_id,omitempty"`
	RegionID          *int64     `json:"region_id,omitempty"`
	Image             []byte     `gorm:"type:bytea" json:"-"`
	Active            bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// PropertyID returns the intrinsic property foreign key for the given
// property key, or nil when unset.
func (p Product) PropertyID(key string) *int64 {
	switch key {
	case "scope":
		return p.ScopeID
	case "service":
		return p.ServiceID
	case "service_type":
		return p.ServiceTypeID
	case "region":
		return p.RegionID
	}
	return nil
}
