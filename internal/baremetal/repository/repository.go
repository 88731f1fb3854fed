package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/baremetal/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, server *domain.BareMetal) error {
	return db.WithContext(ctx).Create(server).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.BareMetal, error) {
	var server domain.BareMetal
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&server).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &server, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.BareMetal, error) {
	var items []domain.BareMetal
	stmt := db.WithContext(ctx).Model(&domain.BareMetal{})

	if filter.RegionID != nil {
		stmt = stmt.Where("region_id = ?", *filter.RegionID)
	}
	if filter.DiskType != "" {
		stmt = stmt.Where("disk_type = ?", filter.DiskType)
	}
	if filter.Active != nil {
		stmt = stmt.Where("is_active = ?", *filter.Active)
	}

	column := "created_at"
	switch strings.TrimSpace(filter.SortBy) {
	case "name":
		column = "name"
	case "cpu_cores":
		column = "cpu_cores"
	case "memory_gb":
		column = "memory_gb"
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, server *domain.BareMetal) error {
	if server == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.BareMetal{}).
		Where("id = ?", server.ID).
		Updates(map[string]any{
			"name":            server.Name,
			"region_id":       server.RegionID,
			"cpu_cores":       server.CPUCores,
			"memory_gb":       server.MemoryGB,
			"disk_gb":         server.DiskGB,
			"disk_type":       server.DiskType,
			"hypervisor_type": server.HypervisorType,
			"price_hourly":    server.PriceHourly,
			"price_monthly":   server.PriceMonthly,
			"is_active":       server.Active,
			"updated_at":      server.UpdatedAt,
			"deleted_at":      server.DeletedAt,
		}).Error
}
