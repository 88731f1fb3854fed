package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListActive(ctx context.Context, db *gorm.DB, productID int64) ([]ProductAttributeValue, error)
	ListActiveByProducts(ctx context.Context, db *gorm.DB, productIDs []int64) ([]ProductAttributeValue, error)
	CreateBatch(ctx context.Context, db *gorm.DB, values []ProductAttributeValue) error
	SoftDeleteBatch(ctx context.Context, db *gorm.DB, ids []int64) error
	Update(ctx context.Context, db *gorm.DB, value *ProductAttributeValue) error
}
