package reference

import (
	"context"

	"github.com/rackworks/catalog/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListScopes(ctx context.Context) ([]domain.Scope, error) {
	var scopes []domain.Scope
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name FROM scopes ORDER BY name`).
		Scan(&scopes).Error
	if err != nil {
		return nil, err
	}
	return scopes, nil
}

func (r *repository) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, scope_id FROM services ORDER BY name`).
		Scan(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var serviceTypes []domain.ServiceType
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, service_id FROM service_types ORDER BY name`).
		Scan(&serviceTypes).Error
	if err != nil {
		return nil, err
	}
	return serviceTypes, nil
}

func (r *repository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, code, name FROM regions ORDER BY code`).
		Scan(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// EnumValues reads the labels of a native postgres enum. On other
// dialects it falls back to the portable enum_values table.
func (r *repository) EnumValues(ctx context.Context, enumName string) ([]string, error) {
	var values []string
	if r.db.Dialector.Name() == "postgres" {
		err := r.db.WithContext(ctx).
			Raw(`SELECT e.enumlabel
                               FROM pg_enum e
                               JOIN pg_type t ON t.oid = e.enumtypid
                              WHERE t.typname = ?
                              ORDER BY e.enumsortorder`, enumName).
			Scan(&values).Error
		if err != nil {
			return nil, err
		}
		return values, nil
	}

	err := r.db.WithContext(ctx).
		Raw(`SELECT value FROM enum_values WHERE enum_type = ? ORDER BY sort_order, value`, enumName).
		Scan(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
