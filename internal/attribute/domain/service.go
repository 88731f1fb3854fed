package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rackworks/catalog/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Key       string
	DataType  string
	Tag       string
	Active    *bool
	SortBy    string
	OrderBy   string
	PageToken string
	PageSize  int

	// CursorID is resolved from PageToken by the service.
	CursorID int64
}

type CreateRequest struct {
	Key             string         `json:"key"`
	DisplayName     string         `json:"display_name"`
	DataType        string         `json:"data_type"`
	Unit            *string        `json:"unit"`
	DefaultValue    *string        `json:"default_value"`
	ValidationRules map[string]any `json:"validation_rules"`
	Tags            []string       `json:"tags"`
	ListOptions     []string       `json:"list_options"`
	Active          *bool          `json:"active"`
}

type UpdateRequest struct {
	ID              string         `json:"id"`
	DisplayName     *string        `json:"display_name,omitempty"`
	DataType        *string        `json:"data_type,omitempty"`
	Unit            *string        `json:"unit,omitempty"`
	DefaultValue    *string        `json:"default_value,omitempty"`
	ValidationRules map[string]any `json:"validation_rules,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	ListOptions     []string       `json:"list_options,omitempty"`
	Active          *bool          `json:"active,omitempty"`
}

type Response struct {
	ID              string         `json:"id"`
	Key             string         `json:"key"`
	DisplayName     string         `json:"display_name"`
	DataType        string         `json:"data_type"`
	Unit            *string        `json:"unit,omitempty"`
	DefaultValue    *string        `json:"default_value,omitempty"`
	ValidationRules map[string]any `json:"validation_rules,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	ListOptions     []string       `json:"list_options,omitempty"`
	Active          bool           `json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ListResult carries one page of attribute definitions.
type ListResult struct {
	Attributes []Response           `json:"attributes"`
	PageInfo   *pagination.PageInfo `json:"page_info,omitempty"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidPageToken   = errors.New("invalid_page_token")
	ErrInvalidKey         = errors.New("invalid_key")
	ErrDuplicateKey       = errors.New("duplicate_key")
	ErrInvalidDisplayName = errors.New("invalid_display_name")
	ErrInvalidDataType    = errors.New("invalid_data_type")
	ErrMissingListOptions = errors.New("missing_list_options")
	ErrInvalidDefault     = errors.New("invalid_default_value")
	ErrDataTypeImmutable  = errors.New("data_type_immutable")
	ErrNotFound           = errors.New("not_found")
)
