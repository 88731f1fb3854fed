package domain

import "time"

type Scope struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Scope) TableName() string { return "scopes" }

type Service struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	ScopeID   *int64    `json:"scope_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Service) TableName() string { return "services" }

type ServiceType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	ServiceID *int64    `json:"service_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ServiceType) TableName() string { return "service_types" }

type Region struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"type:text;not null"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Region) TableName() string { return "regions" }

// EnumValue is the portable fallback for databases without native enum
// catalogs. Postgres deployments read pg_enum directly instead.
type EnumValue struct {
	EnumType  string `json:"enum_type" gorm:"type:text;primaryKey;column:enum_type"`
	Value     string `json:"value" gorm:"type:text;primaryKey;column:value"`
	SortOrder int    `json:"sort_order" gorm:"not null;default:0"`
}

func (EnumValue) TableName() string { return "enum_values" }
