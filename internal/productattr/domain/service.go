package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrProductNotFound    = errors.New("product_not_found")
	ErrAttributeNotBound  = errors.New("attribute_not_bound")
	ErrRequiredValueEmpty = errors.New("required_value_empty")
	ErrValueInvalid       = errors.New("value_invalid")
	ErrDuplicateValue     = errors.New("duplicate_value")
)

type Service interface {
	ListByProduct(ctx context.Context, productID string) ([]Response, error)
	Reconcile(ctx context.Context, productID string, req ReconcileRequest) ([]Response, error)
}

// DesiredValue is one raw attribute value in a Reconcile call. An empty
// Raw unsets the value rather than storing an empty row.
type DesiredValue struct {
	AttributeDefinitionID string `json:"attribute_definition_id" binding:"required"`
	Raw                   string `json:"value"`
}

type ReconcileRequest struct {
	Values []DesiredValue `json:"values"`
}

type Response struct {
	ID                    string    `json:"id"`
	ProductID             string    `json:"product_id"`
	AttributeDefinitionID string    `json:"attribute_definition_id"`
	AttributeKey          string    `json:"attribute_key"`
	DataType              string    `json:"data_type"`
	Value                 string    `json:"value"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
