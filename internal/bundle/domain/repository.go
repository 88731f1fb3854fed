package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, bundle *Bundle) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Bundle, error)
	List(ctx context.Context, db *gorm.DB, productID int64, filter ListRequest) ([]Bundle, error)
	Update(ctx context.Context, db *gorm.DB, bundle *Bundle) error
}
