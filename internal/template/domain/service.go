package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Name    string
	GroupID *int64
	Active  *bool
	SortBy  string
	OrderBy string
}

type CreateRequest struct {
	Name              string   `json:"name"`
	GroupID           *int64   `json:"group_id"`
	DefaultProperties []string `json:"default_properties"`
	FilterProperties  []string `json:"filter_properties"`
	Active            *bool    `json:"active"`
}

type UpdateRequest struct {
	ID                string    `json:"id"`
	Name              *string   `json:"name,omitempty"`
	GroupID           *int64    `json:"group_id,omitempty"`
	DefaultProperties *[]string `json:"default_properties,omitempty"`
	FilterProperties  *[]string `json:"filter_properties,omitempty"`
	FilterAttributes  *[]string `json:"filter_attributes,omitempty"`
	Active            *bool     `json:"active,omitempty"`
}

type Response struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	GroupID           *int64    `json:"group_id,omitempty"`
	DefaultProperties []string  `json:"default_properties,omitempty"`
	FilterProperties  []string  `json:"filter_properties,omitempty"`
	FilterAttributes  []string  `json:"filter_attributes,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

var (
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvalidName            = errors.New("invalid_name")
	ErrUnknownProperty        = errors.New("unknown_property")
	ErrFilterPropertyNotShown = errors.New("filter_property_not_shown")
	ErrFilterAttributeUnbound = errors.New("filter_attribute_unbound")
	ErrNotFound               = errors.New("not_found")
)
