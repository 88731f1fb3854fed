package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/template/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, template *domain.ProductTemplate) error {
	return db.WithContext(ctx).Create(template).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.ProductTemplate, error) {
	var template domain.ProductTemplate
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&template).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.ProductTemplate, error) {
	var items []domain.ProductTemplate
	stmt := db.WithContext(ctx).Model(&domain.ProductTemplate{})

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.GroupID != nil {
		stmt = stmt.Where("group_id = ?", *filter.GroupID)
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, template *domain.ProductTemplate) error {
	if template == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.ProductTemplate{}).
		Where("id = ?", template.ID).
		Updates(map[string]any{
			"name":               template.Name,
			"group_id":           template.GroupID,
			"default_properties": template.DefaultProperties,
			"filter_properties":  template.FilterProperties,
			"filter_attributes":  template.FilterAttributes,
			"is_active":          template.Active,
			"updated_at":         template.UpdatedAt,
			"deleted_at":         template.DeletedAt,
		}).Error
}
