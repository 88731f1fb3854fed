package domain

import (
	"context"
	"errors"
)

var ErrUnknownEnumType = errors.New("unknown_enum_type")

// Enum types exposed through the lookup API. The map value is the
// underlying database enum name.
var EnumTypes = map[string]string{
	"disk_types":       "disk_type",
	"hypervisor_types": "hypervisor_type",
}

type Repository interface {
	ListScopes(ctx context.Context) ([]Scope, error)
	ListServices(ctx context.Context) ([]Service, error)
	ListServiceTypes(ctx context.Context) ([]ServiceType, error)
	ListRegions(ctx context.Context) ([]Region, error)
	EnumValues(ctx context.Context, enumName string) ([]string, error)
}
