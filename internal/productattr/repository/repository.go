package repository

import (
	"context"
	"time"

	"github.com/rackworks/catalog/internal/productattr/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, productID int64) ([]domain.ProductAttributeValue, error) {
	return r.ListActiveByProducts(ctx, db, []int64{productID})
}

func (r *repo) ListActiveByProducts(ctx context.Context, db *gorm.DB, productIDs []int64) ([]domain.ProductAttributeValue, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var values []domain.ProductAttributeValue
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Where("is_active = ?", true).
		Where("deleted_at IS NULL").
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) CreateBatch(ctx context.Context, db *gorm.DB, values []domain.ProductAttributeValue) error {
	if len(values) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&values).Error
}

func (r *repo) SoftDeleteBatch(ctx context.Context, db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return db.WithContext(ctx).
		Model(&domain.ProductAttributeValue{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"is_active":  false,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, value *domain.ProductAttributeValue) error {
	if value == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.ProductAttributeValue{}).
		Where("id = ?", value.ID).
		Updates(map[string]any{
			"value_string":  value.ValueString,
			"value_text":    value.ValueText,
			"value_integer": value.ValueInteger,
			"value_decimal": value.ValueDecimal,
			"value_boolean": value.ValueBoolean,
			"value_json":    value.ValueJSON,
			"updated_at":    value.UpdatedAt,
		}).Error
}
