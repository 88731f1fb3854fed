package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/dedicatedhost/domain"
	"github.com/rackworks/catalog/internal/observability/metrics"
	"github.com/rackworks/catalog/internal/reference"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Reference reference.Service
	Metrics   *metrics.Metrics `optional:"true"`
}

type service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	reference reference.Service
	metrics   *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:        p.DB,
		log:       p.Log.Named("dedicatedhost.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		reference: p.Reference,
		metrics:   p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	hostType := strings.TrimSpace(req.HostType)
	if hostType == "" {
		return nil, domain.ErrInvalidHostType
	}
	if req.Sockets < 0 || req.Cores < 0 || req.MemoryGB < 0 {
		return nil, domain.ErrNegativeCapacity
	}
	if err := s.checkHypervisor(ctx, req.HypervisorType); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	host := domain.DedicatedHost{
		ID:             s.genID.Generate().Int64(),
		Name:           name,
		RegionID:       req.RegionID,
		HostType:       hostType,
		Sockets:        req.Sockets,
		Cores:          req.Cores,
		MemoryGB:       req.MemoryGB,
		HypervisorType: req.HypervisorType,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, s.db, &host); err != nil {
		s.log.Error("failed to create dedicated host", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "dedicated_host", "create")
	resp := toResponse(host)
	return &resp, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		s.log.Error("failed to list dedicated hosts", zap.Error(err))
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	host, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*host)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	host, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		host.Name = name
	}
	if req.RegionID != nil {
		host.RegionID = req.RegionID
	}
	if req.HostType != nil {
		hostType := strings.TrimSpace(*req.HostType)
		if hostType == "" {
			return nil, domain.ErrInvalidHostType
		}
		host.HostType = hostType
	}
	if req.Sockets != nil {
		if *req.Sockets < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		host.Sockets = *req.Sockets
	}
	if req.Cores != nil {
		if *req.Cores < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		host.Cores = *req.Cores
	}
	if req.MemoryGB != nil {
		if *req.MemoryGB < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		host.MemoryGB = *req.MemoryGB
	}
	if req.HypervisorType != nil {
		if err := s.checkHypervisor(ctx, *req.HypervisorType); err != nil {
			return nil, err
		}
		host.HypervisorType = *req.HypervisorType
	}
	if req.Active != nil {
		host.Active = *req.Active
	}

	host.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, host); err != nil {
		s.log.Error("failed to update dedicated host", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "dedicated_host", "update")
	resp := toResponse(*host)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	host, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	host.Active = false
	host.DeletedAt = &now
	host.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, host); err != nil {
		s.log.Error("failed to archive dedicated host", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "dedicated_host", "archive")
	resp := toResponse(*host)
	return &resp, nil
}

func (s *service) checkHypervisor(ctx context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	values, err := s.reference.EnumValues(ctx, "hypervisor_types")
	if err != nil {
		return err
	}
	for _, v := range values {
		if v == value {
			return nil
		}
	}
	return domain.ErrUnknownHypervisor
}

func (s *service) find(ctx context.Context, id string) (*domain.DedicatedHost, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	host, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find dedicated host", zap.Error(err))
		return nil, err
	}
	if host == nil {
		return nil, domain.ErrNotFound
	}
	return host, nil
}

func toResponse(host domain.DedicatedHost) domain.Response {
	return domain.Response{
		ID:             snowflake.ID(host.ID).String(),
		Name:           host.Name,
		RegionID:       host.RegionID,
		HostType:       host.HostType,
		Sockets:        host.Sockets,
		Cores:          host.Cores,
		MemoryGB:       host.MemoryGB,
		HypervisorType: host.HypervisorType,
		Active:         host.Active,
		CreatedAt:      host.CreatedAt,
		UpdatedAt:      host.UpdatedAt,
	}
}
