package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListActive(ctx context.Context, db *gorm.DB, templateID int64) ([]TemplateAttribute, error)
	CreateBatch(ctx context.Context, db *gorm.DB, bindings []TemplateAttribute) error
	SoftDeleteBatch(ctx context.Context, db *gorm.DB, ids []int64) error
	Update(ctx context.Context, db *gorm.DB, binding *TemplateAttribute) error
}
