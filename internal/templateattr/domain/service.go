package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrTemplateNotFound = errors.New("template_not_found")
	ErrUnknownAttribute = errors.New("unknown_attribute")
	ErrDuplicateBinding = errors.New("duplicate_binding")
)

type Service interface {
	List(ctx context.Context, templateID string) ([]Response, error)
	Reconcile(ctx context.Context, templateID string, req ReconcileRequest) ([]Response, error)
}

// BindingInput is one desired binding in a Reconcile call. Order within
// the slice determines sort_order.
type BindingInput struct {
	AttributeDefinitionID string `json:"attribute_definition_id" binding:"required"`
	Required              bool   `json:"is_required"`
	OverviewDisplay       bool   `json:"is_overview_display"`
}

type ReconcileRequest struct {
	Bindings []BindingInput `json:"bindings"`
}

type Response struct {
	ID                    string     `json:"id"`
	ProductTemplateID     string     `json:"product_template_id"`
	AttributeDefinitionID string     `json:"attribute_definition_id"`
	AttributeKey          string     `json:"attribute_key"`
	AttributeDisplayName  string     `json:"attribute_display_name"`
	DataType              string     `json:"data_type"`
	Required              bool       `json:"is_required"`
	OverviewDisplay       bool       `json:"is_overview_display"`
	SortOrder             string     `json:"sort_order"`
	Active                bool       `json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	DeletedAt             *time.Time `json:"deleted_at,omitempty"`
}
