package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, attr *AttributeDefinition) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*AttributeDefinition, error)
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*AttributeDefinition, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]AttributeDefinition, error)
	ListByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]AttributeDefinition, error)
	Update(ctx context.Context, db *gorm.DB, attr *AttributeDefinition) error
}
