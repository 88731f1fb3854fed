package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, server *BareMetal) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*BareMetal, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]BareMetal, error)
	Update(ctx context.Context, db *gorm.DB, server *BareMetal) error
}
