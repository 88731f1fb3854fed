package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/attribute/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, attr *domain.AttributeDefinition) error {
	return db.WithContext(ctx).Create(attr).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.AttributeDefinition, error) {
	var attr domain.AttributeDefinition
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&attr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &attr, nil
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, key string) (*domain.AttributeDefinition, error) {
	var attr domain.AttributeDefinition
	// Keys are unique across archived rows too, so the lookup must not
	// filter on is_active or the uniqueness pre-check misses them.
	err := db.WithContext(ctx).
		Where("key = ?", key).
		Take(&attr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &attr, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.AttributeDefinition, error) {
	var items []domain.AttributeDefinition
	stmt := db.WithContext(ctx).Model(&domain.AttributeDefinition{})

	if filter.Key != "" {
		stmt = stmt.Where("key = ?", filter.Key)
	}
	if filter.DataType != "" {
		stmt = stmt.Where("data_type = ?", filter.DataType)
	}
	if filter.Tag != "" {
		// JSON array containment; portable LIKE keeps sqlite tests honest.
		stmt = stmt.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}
	if filter.Active != nil {
		stmt = stmt.Where("is_active = ?", *filter.Active)
	}

	if filter.PageSize > 0 {
		// Cursor pagination walks ids ascending; one extra row signals more.
		if filter.CursorID > 0 {
			stmt = stmt.Where("id > ?", filter.CursorID)
		}
		stmt = stmt.Order("id ASC").Limit(filter.PageSize + 1)
	} else {
		stmt = stmt.Order(sortClause(filter.SortBy, filter.OrderBy))
	}

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.AttributeDefinition, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.AttributeDefinition
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, attr *domain.AttributeDefinition) error {
	if attr == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.AttributeDefinition{}).
		Where("id = ?", attr.ID).
		Updates(map[string]any{
			"display_name":     attr.DisplayName,
			"unit":             attr.Unit,
			"default_value":    attr.DefaultValue,
			"validation_rules": attr.ValidationRules,
			"tags":             attr.Tags,
			"list_options":     attr.ListOptions,
			"is_active":        attr.Active,
			"updated_at":       attr.UpdatedAt,
			"deleted_at":       attr.DeletedAt,
		}).Error
}

func sortClause(sortBy, orderBy string) string {
	column := "created_at"
	switch strings.TrimSpace(sortBy) {
	case "key":
		column = "key"
	case "display_name":
		column = "display_name"
	case "updated_at":
		column = "updated_at"
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(orderBy), "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
