package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, templateID int64, filter domain.ListRequest) ([]domain.Product, error) {
	var items []domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})

	if templateID != 0 {
		stmt = stmt.Where("product_template_id = ?", templateID)
	}
	if filter.ScopeID != nil {
		stmt = stmt.Where("scope_id = ?", *filter.ScopeID)
	}
	if filter.ServiceID != nil {
		stmt = stmt.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.ServiceTypeID != nil {
		stmt = stmt.Where("service_type_id = ?", *filter.ServiceTypeID)
	}
	if filter.RegionID != nil {
		stmt = stmt.Where("region_id = ?", *filter.RegionID)
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":            product.Name,
			"scope_id":        product.ScopeID,
			"service_id":      product.ServiceID,
			"service_type_id": product.ServiceTypeID,
			"region_id":       product.RegionID,
			"image":           product.Image,
			"is_active":       product.Active,
			"updated_at":      product.UpdatedAt,
			"deleted_at":      product.DeletedAt,
		}).Error
}
