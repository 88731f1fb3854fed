package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/bundle/domain"
	"github.com/rackworks/catalog/internal/observability/metrics"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	rpdomain "github.com/rackworks/catalog/internal/rateplan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	ProductRepo  proddomain.Repository
	RatePlanRepo rpdomain.Repository
	Metrics      *metrics.Metrics `optional:"true"`
}

type service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	productRepo  proddomain.Repository
	ratePlanRepo rpdomain.Repository
	metrics      *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:           p.DB,
		log:          p.Log.Named("bundle.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		productRepo:  p.ProductRepo,
		ratePlanRepo: p.RatePlanRepo,
		metrics:      p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.DiscountPct < 0 || req.DiscountPct > 100 {
		return nil, domain.ErrInvalidDiscount
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	product, err := s.productRepo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	planID, err := snowflake.ParseString(strings.TrimSpace(req.RatePlanID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	plan, err := s.ratePlanRepo.FindByID(ctx, s.db, planID.Int64())
	if err != nil {
		s.log.Error("failed to find rate plan", zap.Error(err))
		return nil, err
	}
	if plan == nil || plan.ProductID != product.ID {
		return nil, domain.ErrInvalidRatePlan
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	bundle := domain.Bundle{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		ProductID:   product.ID,
		RatePlanID:  plan.ID,
		Quantity:    req.Quantity,
		DiscountPct: req.DiscountPct,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, s.db, &bundle); err != nil {
		s.log.Error("failed to create bundle", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bundle", "create")
	resp := toResponse(bundle)
	return &resp, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var productID int64
	if strings.TrimSpace(req.ProductID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		productID = parsed.Int64()
	}

	items, err := s.repo.List(ctx, s.db, productID, req)
	if err != nil {
		s.log.Error("failed to list bundles", zap.Error(err))
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	bundle, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*bundle)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	bundle, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		bundle.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		bundle.Quantity = *req.Quantity
	}
	if req.DiscountPct != nil {
		if *req.DiscountPct < 0 || *req.DiscountPct > 100 {
			return nil, domain.ErrInvalidDiscount
		}
		bundle.DiscountPct = *req.DiscountPct
	}
	if req.Active != nil {
		bundle.Active = *req.Active
	}

	bundle.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, bundle); err != nil {
		s.log.Error("failed to update bundle", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bundle", "update")
	resp := toResponse(*bundle)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	bundle, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bundle.Active = false
	bundle.DeletedAt = &now
	bundle.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, bundle); err != nil {
		s.log.Error("failed to archive bundle", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bundle", "archive")
	resp := toResponse(*bundle)
	return &resp, nil
}

func (s *service) find(ctx context.Context, id string) (*domain.Bundle, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	bundle, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find bundle", zap.Error(err))
		return nil, err
	}
	if bundle == nil {
		return nil, domain.ErrNotFound
	}
	return bundle, nil
}

func toResponse(bundle domain.Bundle) domain.Response {
	return domain.Response{
		ID:          snowflake.ID(bundle.ID).String(),
		Name:        bundle.Name,
		ProductID:   snowflake.ID(bundle.ProductID).String(),
		RatePlanID:  snowflake.ID(bundle.RatePlanID).String(),
		Quantity:    bundle.Quantity,
		DiscountPct: bundle.DiscountPct,
		Active:      bundle.Active,
		CreatedAt:   bundle.CreatedAt,
		UpdatedAt:   bundle.UpdatedAt,
	}
}
