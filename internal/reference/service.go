package reference

import (
	"context"
	"time"

	"github.com/rackworks/catalog/internal/cache"
	"github.com/rackworks/catalog/internal/config"
	"github.com/rackworks/catalog/internal/observability/metrics"
	"github.com/rackworks/catalog/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service fronts the lookup repository with an in-process TTL cache.
// Enum labels and lookup tables change through migrations only, so a
// short cache is safe.
type Service interface {
	Scopes(ctx context.Context) ([]domain.Scope, error)
	Services(ctx context.Context) ([]domain.Service, error)
	ServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	Regions(ctx context.Context) ([]domain.Region, error)
	EnumValues(ctx context.Context, enumType string) ([]string, error)
}

type ServiceParams struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Holder  *config.CatalogConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	log     *zap.Logger
	repo    domain.Repository
	holder  *config.CatalogConfigHolder
	metrics *metrics.Metrics
	enums   cache.Cache[string, []string]
}

func NewService(p ServiceParams) Service {
	return &service{
		log:     p.Log.Named("reference.service"),
		repo:    p.Repo,
		holder:  p.Holder,
		metrics: p.Metrics,
		enums:   cache.NewTTLCache[string, []string](),
	}
}

func (s *service) Scopes(ctx context.Context) ([]domain.Scope, error) {
	return s.repo.ListScopes(ctx)
}

func (s *service) Services(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *service) ServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return s.repo.ListServiceTypes(ctx)
}

func (s *service) Regions(ctx context.Context) ([]domain.Region, error) {
	return s.repo.ListRegions(ctx)
}

func (s *service) EnumValues(ctx context.Context, enumType string) ([]string, error) {
	enumName, ok := domain.EnumTypes[enumType]
	if !ok {
		return nil, domain.ErrUnknownEnumType
	}

	if values, ok := s.enums.Get(enumType); ok {
		s.metrics.RecordReferenceLookup(ctx, enumType, true)
		return values, nil
	}

	values, err := s.repo.EnumValues(ctx, enumName)
	if err != nil {
		s.log.Error("failed to load enum values", zap.String("enum_type", enumType), zap.Error(err))
		return nil, err
	}

	ttl := time.Duration(s.holder.Get().ReferenceCacheTTLSec) * time.Second
	s.enums.Set(enumType, values, ttl)
	s.metrics.RecordReferenceLookup(ctx, enumType, false)
	return values, nil
}
