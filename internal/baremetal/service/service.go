package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/baremetal/domain"
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
		log:       p.Log.Named("baremetal.service"),
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
	if req.CPUCores < 0 || req.MemoryGB < 0 || req.DiskGB < 0 {
		return nil, domain.ErrNegativeCapacity
	}
	if req.PriceHourly < 0 || req.PriceMonthly < 0 {
		return nil, domain.ErrNegativePrice
	}
	if err := s.checkEnum(ctx, "disk_types", req.DiskType, domain.ErrUnknownDiskType); err != nil {
		return nil, err
	}
	if err := s.checkEnum(ctx, "hypervisor_types", req.HypervisorType, domain.ErrUnknownHypervisor); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	server := domain.BareMetal{
		ID:             s.genID.Generate().Int64(),
		Name:           name,
		RegionID:       req.RegionID,
		CPUCores:       req.CPUCores,
		MemoryGB:       req.MemoryGB,
		DiskGB:         req.DiskGB,
		DiskType:       req.DiskType,
		HypervisorType: req.HypervisorType,
		PriceHourly:    req.PriceHourly,
		PriceMonthly:   req.PriceMonthly,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, s.db, &server); err != nil {
		s.log.Error("failed to create bare metal server", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bare_metal", "create")
	resp := toResponse(server)
	return &resp, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		s.log.Error("failed to list bare metal servers", zap.Error(err))
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	server, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*server)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	server, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		server.Name = name
	}
	if req.RegionID != nil {
		server.RegionID = req.RegionID
	}
	if req.CPUCores != nil {
		if *req.CPUCores < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		server.CPUCores = *req.CPUCores
	}
	if req.MemoryGB != nil {
		if *req.MemoryGB < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		server.MemoryGB = *req.MemoryGB
	}
	if req.DiskGB != nil {
		if *req.DiskGB < 0 {
			return nil, domain.ErrNegativeCapacity
		}
		server.DiskGB = *req.DiskGB
	}
	if req.DiskType != nil {
		if err := s.checkEnum(ctx, "disk_types", *req.DiskType, domain.ErrUnknownDiskType); err != nil {
			return nil, err
		}
		server.DiskType = *req.DiskType
	}
	if req.HypervisorType != nil {
		if err := s.checkEnum(ctx, "hypervisor_types", *req.HypervisorType, domain.ErrUnknownHypervisor); err != nil {
			return nil, err
		}
		server.HypervisorType = *req.HypervisorType
	}
	if req.PriceHourly != nil {
		if *req.PriceHourly < 0 {
			return nil, domain.ErrNegativePrice
		}
		server.PriceHourly = *req.PriceHourly
	}
	if req.PriceMonthly != nil {
		if *req.PriceMonthly < 0 {
			return nil, domain.ErrNegativePrice
		}
		server.PriceMonthly = *req.PriceMonthly
	}
	if req.Active != nil {
		server.Active = *req.Active
	}

	server.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, server); err != nil {
		s.log.Error("failed to update bare metal server", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bare_metal", "update")
	resp := toResponse(*server)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	server, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	server.Active = false
	server.DeletedAt = &now
	server.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, server); err != nil {
		s.log.Error("failed to archive bare metal server", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "bare_metal", "archive")
	resp := toResponse(*server)
	return &resp, nil
}

// checkEnum validates a value against a reference enum. An empty value is
// allowed; the column stays unset.
func (s *service) checkEnum(ctx context.Context, enumType, value string, invalid error) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	values, err := s.reference.EnumValues(ctx, enumType)
	if err != nil {
		return err
	}
	for _, v := range values {
		if v == value {
			return nil
		}
	}
	return invalid
}

func (s *service) find(ctx context.Context, id string) (*domain.BareMetal, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	server, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find bare metal server", zap.Error(err))
		return nil, err
	}
	if server == nil {
		return nil, domain.ErrNotFound
	}
	return server, nil
}

func toResponse(server domain.BareMetal) domain.Response {
	return domain.Response{
		ID:             snowflake.ID(server.ID).String(),
		Name:           server.Name,
		RegionID:       server.RegionID,
		CPUCores:       server.CPUCores,
		MemoryGB:       server.MemoryGB,
		DiskGB:         server.DiskGB,
		DiskType:       server.DiskType,
		HypervisorType: server.HypervisorType,
		PriceHourly:    server.PriceHourly,
		PriceMonthly:   server.PriceMonthly,
		Active:         server.Active,
		CreatedAt:      server.CreatedAt,
		UpdatedAt:      server.UpdatedAt,
	}
}
