package domain

import "time"

type RatePlan struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	ProductID    int64      `gorm:"index:ix_rate_plans_product" json:"product_id"`
	RegionID     *int64     `json:"region_id,omitempty"`
	Name         string     `json:"name"`
	PriceHourly  float64    `gorm:"type:numeric(18,6)" json:"price_hourly"`
	PriceMonthly float64    `gorm:"type:numeric(18,6)" json:"price_monthly"`
	Currency     string     `gorm:"type:char(3)" json:"currency"`
	Active       bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (RatePlan) TableName() string {
	return "rate_plans"
}
