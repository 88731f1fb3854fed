package repository

import (
	"context"
	"strings"

	"github.com/rackworks/catalog/internal/dedicatedhost/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, host *domain.DedicatedHost) error {
	return db.WithContext(ctx).Create(host).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.DedicatedHost, error) {
	var host domain.DedicatedHost
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&host).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &host, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.DedicatedHost, error) {
	var items []domain.DedicatedHost
	stmt := db.WithContext(ctx).Model(&domain.DedicatedHost{})

	if filter.RegionID != nil {
		stmt = stmt.Where("region_id = ?", *filter.RegionID)
	}
	if filter.HostType != "" {
		stmt = stmt.Where("host_type = ?", filter.HostType)
	}
	if filter.Active != nil {
		stmt = stmt.Where("is_active = ?", *filter.Active)
	}

	column := "created_at"
	switch strings.TrimSpace(filter.SortBy) {
	case "name":
		column = "name"
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, host *domain.DedicatedHost) error {
	if host == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.DedicatedHost{}).
		Where("id = ?", host.ID).
		Updates(map[string]any{
			"name":            host.Name,
			"region_id":       host.RegionID,
			"host_type":       host.HostType,
			"sockets":         host.Sockets,
			"cores":           host.Cores,
			"memory_gb":       host.MemoryGB,
			"hypervisor_type": host.HypervisorType,
			"is_active":       host.Active,
			"updated_at":      host.UpdatedAt,
			"deleted_at":      host.DeletedAt,
		}).Error
}
