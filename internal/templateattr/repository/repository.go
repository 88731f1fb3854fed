package repository

import (
	"context"
	"time"

	"github.com/rackworks/catalog/internal/templateattr/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, templateID int64) ([]domain.TemplateAttribute, error) {
	var bindings []domain.TemplateAttribute
	err := db.WithContext(ctx).
		Where("product_template_id = ?", templateID).
		Where("is_active = ?", true).
		Where("deleted_at IS NULL").
		Order("sort_order ASC").
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *repo) CreateBatch(ctx context.Context, db *gorm.DB, bindings []domain.TemplateAttribute) error {
	if len(bindings) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&bindings).Error
}

func (r *repo) SoftDeleteBatch(ctx context.Context, db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return db.WithContext(ctx).
		Model(&domain.TemplateAttribute{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"is_active":  false,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, binding *domain.TemplateAttribute) error {
	if binding == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.TemplateAttribute{}).
		Where("id = ?", binding.ID).
		Updates(map[string]any{
			"is_required":         binding.Required,
			"is_overview_display": binding.OverviewDisplay,
			"sort_order":          binding.SortOrder,
			"updated_at":          binding.UpdatedAt,
		}).Error
}
