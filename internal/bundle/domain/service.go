package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidRatePlan = errors.New("invalid_rate_plan")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrNotFound        = errors.New("not_found")
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	ProductID string
	Active    *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	Name        string  `json:"name"`
	ProductID   string  `json:"product_id"`
	RatePlanID  string  `json:"rate_plan_id"`
	Quantity    int     `json:"quantity"`
	DiscountPct float64 `json:"discount_pct"`
	Active      *bool   `json:"active"`
}

type UpdateRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	DiscountPct *float64 `json:"discount_pct,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProductID   string    `json:"product_id"`
	RatePlanID  string    `json:"rate_plan_id"`
	Quantity    int       `json:"quantity"`
	DiscountPct float64   `json:"discount_pct"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
