package seed

import (
	"context"
	"errors"

	refdomain "github.com/rackworks/catalog/internal/reference/domain"
	"gorm.io/gorm"
)

// EnsureReferenceData seeds the intrinsic property lookup tables so a
// fresh install has something to attach products to. Existing rows are
// left untouched.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scopes := []refdomain.Scope{
			{ID: 1, Name: "public"},
			{ID: 2, Name: "private"},
		}
		for _, scope := range scopes {
			if err := tx.Where(refdomain.Scope{ID: scope.ID}).
				FirstOrCreate(&scope).Error; err != nil {
				return err
			}
		}

		one := int64(1)
		services := []refdomain.Service{
			{ID: 1, Name: "compute", ScopeID: &one},
			{ID: 2, Name: "storage", ScopeID: &one},
			{ID: 3, Name: "network", ScopeID: &one},
		}
		for _, service := range services {
			if err := tx.Where(refdomain.Service{ID: service.ID}).
				FirstOrCreate(&service).Error; err != nil {
				return err
			}
		}

		serviceTypes := []refdomain.ServiceType{
			{ID: 1, Name: "virtual_machine", ServiceID: &one},
			{ID: 2, Name: "bare_metal", ServiceID: &one},
			{ID: 3, Name: "dedicated_host", ServiceID: &one},
		}
		for _, st := range serviceTypes {
			if err := tx.Where(refdomain.ServiceType{ID: st.ID}).
				FirstOrCreate(&st).Error; err != nil {
				return err
			}
		}

		regions := []refdomain.Region{
			{ID: 1, Code: "us-east-1", Name: "US East"},
			{ID: 2, Code: "eu-west-1", Name: "EU West"},
			{ID: 3, Code: "ap-south-1", Name: "Asia Pacific South"},
		}
		for _, region := range regions {
			if err := tx.Where(refdomain.Region{ID: region.ID}).
				FirstOrCreate(&region).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
