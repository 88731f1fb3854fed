package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, plan *RatePlan) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*RatePlan, error)
	List(ctx context.Context, db *gorm.DB, productID int64, filter ListRequest) ([]RatePlan, error)
	Update(ctx context.Context, db *gorm.DB, plan *RatePlan) error
}
