package domain

import "time"

type Bundle struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	ProductID   int64      `gorm:"index:ix_bundles_product" json:"product_id"`
	RatePlanID  int64      `json:"rate_plan_id"`
	Quantity    int        `gorm:"default:1" json:"quantity"`
	DiscountPct float64    `gorm:"type:numeric(5,2)" json:"discount_pct"`
	Active      bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (Bundle) TableName() string {
	return "bundles"
}
