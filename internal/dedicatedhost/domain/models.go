package domain

import "time"

type DedicatedHost struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Name           string     `json:"name"`
	RegionID       *int64     `json:"region_id,omitempty"`
	HostType       string     `json:"host_type"`
	Sockets        int        `json:"sockets"`
	Cores          int        `json:"cores"`
	MemoryGB       int        `gorm:"column:memory_gb" json:"memory_gb"`
	HypervisorType string     `json:"hypervisor_type"`
	Active         bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (DedicatedHost) TableName() string {
	return "dedicated_hosts"
}
