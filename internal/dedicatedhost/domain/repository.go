package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, host *DedicatedHost) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*DedicatedHost, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]DedicatedHost, error)
	Update(ctx context.Context, db *gorm.DB, host *DedicatedHost) error
}
