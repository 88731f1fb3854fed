package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/observability/metrics"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	"github.com/rackworks/catalog/internal/rateplan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProductRepo proddomain.Repository
	Metrics     *metrics.Metrics `optional:"true"`
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	productRepo proddomain.Repository
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("rateplan.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
		metrics:     p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.PriceHourly < 0 || req.PriceMonthly < 0 {
		return nil, domain.ErrNegativePrice
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if len(currency) != 3 {
		return nil, domain.ErrInvalidCurrency
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

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	plan := domain.RatePlan{
		ID:           s.genID.Generate().Int64(),
		ProductID:    product.ID,
		RegionID:     req.RegionID,
		Name:         name,
		PriceHourly:  req.PriceHourly,
		PriceMonthly: req.PriceMonthly,
		Currency:     currency,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, s.db, &plan); err != nil {
		s.log.Error("failed to create rate plan", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "rate_plan", "create")
	resp := toResponse(plan)
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
		s.log.Error("failed to list rate plans", zap.Error(err))
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	plan, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*plan)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	plan, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		plan.Name = name
	}
	if req.RegionID != nil {
		plan.RegionID = req.RegionID
	}
	if req.PriceHourly != nil {
		if *req.PriceHourly < 0 {
			return nil, domain.ErrNegativePrice
		}
		plan.PriceHourly = *req.PriceHourly
	}
	if req.PriceMonthly != nil {
		if *req.PriceMonthly < 0 {
			return nil, domain.ErrNegativePrice
		}
		plan.PriceMonthly = *req.PriceMonthly
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return nil, domain.ErrInvalidCurrency
		}
		plan.Currency = currency
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	plan.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, plan); err != nil {
		s.log.Error("failed to update rate plan", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "rate_plan", "update")
	resp := toResponse(*plan)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	plan, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan.Active = false
	plan.DeletedAt = &now
	plan.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, plan); err != nil {
		s.log.Error("failed to archive rate plan", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "rate_plan", "archive")
	resp := toResponse(*plan)
	return &resp, nil
}

func (s *service) find(ctx context.Context, id string) (*domain.RatePlan, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	plan, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find rate plan", zap.Error(err))
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func toResponse(plan domain.RatePlan) domain.Response {
	return domain.Response{
		ID:           snowflake.ID(plan.ID).String(),
		ProductID:    snowflake.ID(plan.ProductID).String(),
		RegionID:     plan.RegionID,
		Name:         plan.Name,
		PriceHourly:  plan.PriceHourly,
		PriceMonthly: plan.PriceMonthly,
		Currency:     plan.Currency,
		Active:       plan.Active,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}
