package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, template *ProductTemplate) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*ProductTemplate, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]ProductTemplate, error)
	Update(ctx context.Context, db *gorm.DB, template *ProductTemplate) error
}
