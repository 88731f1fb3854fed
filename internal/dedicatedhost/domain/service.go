package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidHostType   = errors.New("invalid_host_type")
	ErrNegativeCapacity  = errors.New("negative_capacity")
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
	HostType string
	Active   *bool
	SortBy   string
	OrderBy  string
}

type CreateRequest struct {
	Name           string `json:"name"`
	RegionID       *int64 `json:"region_id"`
	HostType       string `json:"host_type"`
	Sockets        int    `json:"sockets"`
	Cores          int    `json:"cores"`
	MemoryGB       int    `json:"memory_gb"`
	HypervisorType string `json:"hypervisor_type"`
	Active         *bool  `json:"active"`
}

type UpdateRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	RegionID       *int64  `json:"region_id,omitempty"`
	HostType       *string `json:"host_type,omitempty"`
	Sockets        *int    `json:"sockets,omitempty"`
	Cores          *int    `json:"cores,omitempty"`
	MemoryGB       *int    `json:"memory_gb,omitempty"`
	HypervisorType *string `json:"hypervisor_type,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

type Response struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RegionID       *int64    `json:"region_id,omitempty"`
	HostType       string    `json:"host_type"`
	Sockets        int       `json:"sockets"`
	Cores          int       `json:"cores"`
	MemoryGB       int       `json:"memory_gb"`
	HypervisorType string    `json:"hypervisor_type"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
