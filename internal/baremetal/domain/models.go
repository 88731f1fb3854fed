package domain

import "time"

type BareMetal struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Name           string     `json:"name"`
	RegionID       *int64     `json:"region_id,omitempty"`
	CPUCores       int        `gorm:"column:cpu_cores" json:"cpu_cores"`
	MemoryGB       int        `gorm:"column:memory_gb" json:"memory_gb"`
	DiskGB         int        `gorm:"column:disk_gb" json:"disk_gb"`
	DiskType       string     `json:"disk_type"`
	HypervisorType string     `json:"hypervisor_type"`
	PriceHourly    float64    `gorm:"type:numeric(18,6)" json:"price_hourly"`
	PriceMonthly   float64    `gorm:"type:numeric(18,6)" json:"price_monthly"`
	Active         bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (BareMetal) TableName() string {
	return "bare_metal_servers"
}
