package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rackworks/catalog/internal/filterview"
)

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrTemplateNotFound = errors.New("template_not_found")
	ErrNotFound         = errors.New("not_found")
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	TemplateID    string
	ScopeID       *int64
	ServiceID     *int64
	ServiceTypeID *int64
	RegionID      *int64
	Active        *bool
	SortBy        string
	OrderBy       string

	// Filters is keyed by filter control id (prop_<key> / attr_<id>).
	Filters map[string]string
}

type CreateRequest struct {
	ProductTemplateID string `json:"product_template_id"`
	Name              string `json:"name"`
	ScopeID           *int64 `json:"scope_id"`
	ServiceID         *int64 `json:"service_id"`
	ServiceTypeID     *int64 `json:"service_type_id"`
	RegionID          *int64 `json:"region_id"`
	ImageBase64       string `json:"image"`
	Active            *bool  `json:"active"`
}

type UpdateRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	ScopeID       *int64  `json:"scope_id,omitempty"`
	ServiceID     *int64  `json:"service_id,omitempty"`
	ServiceTypeID *int64  `json:"service_type_id,omitempty"`
	RegionID      *int64  `json:"region_id,omitempty"`
	ImageBase64   *string `json:"image,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// ValueView is one decoded attribute value attached to a product response.
type ValueView struct {
	AttributeDefinitionID string `json:"attribute_definition_id"`
	Key                   string `json:"key"`
	DisplayName           string `json:"display_name"`
	DataType              string `json:"data_type"`
	Value                 string `json:"value"`
}

type Response struct {
	ID                string      `json:"id"`
	ProductTemplateID string      `json:"product_template_id"`
	Name              string      `json:"name"`
	ScopeID           *int64      `json:"scope_id,omitempty"`
	ServiceID         *int64      `json:"service_id,omitempty"`
	ServiceTypeID     *int64      `json:"service_type_id,omitempty"`
	RegionID          *int64      `json:"region_id,omitempty"`
	ImageBase64       string      `json:"image,omitempty"`
	Values            []ValueView `json:"values,omitempty"`
	Active            bool        `json:"active"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ListResponse carries the matching products plus the filter controls
// derived from the template, so callers can render the filter bar without
// a second round trip.
type ListResponse struct {
	Products []Response           `json:"products"`
	Controls []filterview.Control `json:"controls,omitempty"`
}
