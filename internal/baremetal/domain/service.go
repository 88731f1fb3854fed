package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrNegativeCapacity  = errors.New("negative_capacity")
	ErrNegativePrice     = errors.New("negative_price")
	ErrUnknownDiskType   = errors.New("unknown_disk_type")
	ErrUnknownHypervisor = errors.New("unknown_hypervisor_type")
	ErrNotFound          = errors.New("not_found")
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	RegionID *int64
	DiskType string
	Active   *bool
	SortBy   string
	OrderBy  string
}

type CreateRequest struct {
	Name           string  `json:"name"`
	RegionID       *int64  `json:"region_id"`
	CPUCores       int     `json:"cpu_cores"`
	MemoryGB       int     `json:"memory_gb"`
	DiskGB         int     `json:"disk_gb"`
	DiskType       string  `json:"disk_type"`
	HypervisorType string  `json:"hypervisor_type"`
	PriceHourly    float64 `json:"price_hourly"`
	PriceMonthly   float64 `json:"price_monthly"`
	Active         *bool   `json:"active"`
}

type UpdateRequest struct {
	ID             string   `json:"id"`
	Name           *string  `json:"name,omitempty"`
	RegionID       *int64   `json:"region_id,omitempty"`
	CPUCores       *int     `json:"cpu_cores,omitempty"`
	MemoryGB       *int     `json:"memory_gb,omitempty"`
	DiskGB         *int     `json:"disk_gb,omitempty"`
	DiskType       *string  `json:"disk_type,omitempty"`
	HypervisorType *string  `json:"hypervisor_type,omitempty"`
	PriceHourly    *float64 `json:"price_hourly,omitempty"`
	PriceMonthly   *float64 `json:"price_monthly,omitempty"`
	Active         *bool    `json:"active,omitempty"`
}

type Response struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RegionID       *int64    `json:"region_id,omitempty"`
	CPUCores       int       `json:"cpu_cores"`
	MemoryGB       int       `json:"memory_gb"`
	DiskGB         int       `json:"disk_gb"`
	DiskType       string    `json:"disk_type"`
	HypervisorType string    `json:"hypervisor_type"`
	PriceHourly    float64   `json:"price_hourly"`
	PriceMonthly   float64   `json:"price_monthly"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
