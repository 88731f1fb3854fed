package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/rateplan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, plan *domain.RatePlan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.RatePlan, error) {
	var plan domain.RatePlan
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, productID int64, filter domain.ListRequest) ([]domain.RatePlan, error) {
	var items []domain.RatePlan
	stmt := db.WithContext(ctx).Model(&domain.RatePlan{})

	if productID != 0 {
		stmt = stmt.Where("product_id = ?", productID)
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
	case "price_hourly":
		column = "price_hourly"
	case "price_monthly":
		column = "price_monthly"
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, plan *domain.RatePlan) error {
	if plan == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.RatePlan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]any{
			"region_id":     plan.RegionID,
			"name":          plan.Name,
			"price_hourly":  plan.PriceHourly,
			"price_monthly": plan.PriceMonthly,
			"currency":      plan.Currency,
			"is_active":     plan.Active,
			"updated_at":    plan.UpdatedAt,
			"deleted_at":    plan.DeletedAt,
		}).Error
}
