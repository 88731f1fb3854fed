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
	ErrNegativePrice   = errors.New("negative_price")
	ErrInvalidCurrency = errors.New("invalid_currency")
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
	RegionID  *int64
	Active    *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	ProductID    string  `json:"product_id"`
	RegionID     *int64  `json:"region_id"`
	Name         string  `json:"name"`
	PriceHourly  float64 `json:"price_hourly"`
	PriceMonthly float64 `json:"price_monthly"`
	Currency     string  `json:"currency"`
	Active       *bool   `json:"active"`
}

type UpdateRequest struct {
	ID           string   `json:"id"`
	RegionID     *int64   `json:"region_id,omitempty"`
	Name         *string  `json:"name,omitempty"`
	PriceHourly  *float64 `json:"price_hourly,omitempty"`
	PriceMonthly *float64 `json:"price_monthly,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

type Response struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	RegionID     *int64    `json:"region_id,omitempty"`
	Name         string    `json:"name"`
	PriceHourly  float64   `json:"price_hourly"`
	PriceMonthly float64   `json:"price_monthly"`
	Currency     string    `json:"currency"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
