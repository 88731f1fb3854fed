package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/bundle/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, bundle *domain.Bundle) error {
	return db.WithContext(ctx).Create(bundle).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Bundle, error) {
	var bundle domain.Bundle
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&bundle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, productID int64, filter domain.ListRequest) ([]domain.Bundle, error) {
	var items []domain.Bundle
	stmt := db.WithContext(ctx).Model(&domain.Bundle{})

	if productID != 0 {
		stmt = stmt.Where("product_id = ?", productID)
	}
	if filter.Active != nil {
		stmt = stmt.Where("is_active = ?", *filter.Active)
	}

	column := "created_at"
	switch strings.TrimSpace(filter.SortBy) {
	case "name":
		column = "name"
	case "updated_at":
		column = "updated_at"
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderBy), "desc") {
		direction = "DESC"
	}

	if err := stmt.Order(column + " " + direction).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, bundle *domain.Bundle) error {
	if bundle == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Bundle{}).
		Where("id = ?", bundle.ID).
		Updates(map[string]any{
			"name":         bundle.Name,
			"quantity":     bundle.Quantity,
			"discount_pct": bundle.DiscountPct,
			"is_active":    bundle.Active,
			"updated_at":   bundle.UpdatedAt,
			"deleted_at":   bundle.DeletedAt,
		}).Error
}
