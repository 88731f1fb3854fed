package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rackworks/catalog/internal/filterview"
	"github.com/rackworks/catalog/internal/observability/metrics"
	"github.com/rackworks/catalog/internal/template/domain"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	BindingRepo tadomain.Repository
	Metrics     *metrics.Metrics `optional:"true"`
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	bindingRepo tadomain.Repository
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("template.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		bindingRepo: p.BindingRepo,
		metrics:     p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	defaults := normalizeProperties(req.DefaultProperties)
	if err := validateProperties(defaults); err != nil {
		return nil, err
	}
	filters := normalizeProperties(req.FilterProperties)
	if err := validateFilterProperties(filters, defaults); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	template := domain.ProductTemplate{
		ID:                s.genID.Generate().Int64(),
		Name:              name,
		GroupID:           req.GroupID,
		DefaultProperties: datatypes.NewJSONSlice(defaults),
		FilterProperties:  datatypes.NewJSONSlice(filters),
		// Filter attributes reference bindings, which cannot exist yet.
		FilterAttributes: datatypes.NewJSONSlice([]int64{}),
		Active:           active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, s.db, &template); err != nil {
		s.log.Error("failed to create template", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "template", "create")
	resp := toResponse(template)
	return &resp, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		s.log.Error("failed to list templates", zap.Error(err))
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	template, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*template)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	template, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		template.Name = name
	}
	if req.GroupID != nil {
		template.GroupID = req.GroupID
	}
	if req.DefaultProperties != nil {
		defaults := normalizeProperties(*req.DefaultProperties)
		if err := validateProperties(defaults); err != nil {
			return nil, err
		}
		template.DefaultProperties = datatypes.NewJSONSlice(defaults)
	}
	if req.FilterProperties != nil {
		template.FilterProperties = datatypes.NewJSONSlice(normalizeProperties(*req.FilterProperties))
	}
	// Filter properties must remain a subset of the shown properties even
	// when only one of the two lists changed.
	if err := validateFilterProperties(template.FilterProperties, template.DefaultProperties); err != nil {
		return nil, err
	}

	if req.FilterAttributes != nil {
		ids, err := parseAttributeIDs(*req.FilterAttributes)
		if err != nil {
			return nil, err
		}
		if err := s.validateFilterAttributes(ctx, template.ID, ids); err != nil {
			return nil, err
		}
		template.FilterAttributes = datatypes.NewJSONSlice(ids)
	}
	if req.Active != nil {
		template.Active = *req.Active
	}

	template.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, template); err != nil {
		s.log.Error("failed to update template", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "template", "update")
	resp := toResponse(*template)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	template, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	template.Active = false
	template.DeletedAt = &now
	template.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, template); err != nil {
		s.log.Error("failed to archive template", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "template", "archive")
	resp := toResponse(*template)
	return &resp, nil
}

func (s *service) find(ctx context.Context, id string) (*domain.ProductTemplate, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	template, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find template", zap.Error(err))
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return template, nil
}

func (s *service) validateFilterAttributes(ctx context.Context, templateID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	bindings, err := s.bindingRepo.ListActive(ctx, s.db, templateID)
	if err != nil {
		return err
	}
	bound := make(map[int64]struct{}, len(bindings))
	for _, b := range bindings {
		bound[b.AttributeDefinitionID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := bound[id]; !ok {
			return domain.ErrFilterAttributeUnbound
		}
	}
	return nil
}

func normalizeProperties(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func validateProperties(keys []string) error {
	for _, key := range keys {
		if !filterview.IsPropertyKey(key) {
			return domain.ErrUnknownProperty
		}
	}
	return nil
}

func validateFilterProperties(filters, defaults []string) error {
	if err := validateProperties(filters); err != nil {
		return err
	}
	shown := make(map[string]struct{}, len(defaults))
	for _, key := range defaults {
		shown[key] = struct{}{}
	}
	for _, key := range filters {
		if _, ok := shown[key]; !ok {
			return domain.ErrFilterPropertyNotShown
		}
	}
	return nil
}

func parseAttributeIDs(raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		parsed, err := snowflake.ParseString(strings.TrimSpace(item))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		ids = append(ids, parsed.Int64())
	}
	return ids, nil
}

func toResponse(template domain.ProductTemplate) domain.Response {
	filterIDs := make([]string, 0, len(template.FilterAttributes))
	for _, id := range template.FilterAttributes {
		filterIDs = append(filterIDs, snowflake.ID(id).String())
	}

	return domain.Response{
		ID:                snowflake.ID(template.ID).String(),
		Name:              template.Name,
		GroupID:           template.GroupID,
		DefaultProperties: template.DefaultProperties,
		FilterProperties:  template.FilterProperties,
		FilterAttributes:  filterIDs,
		Active:            template.Active,
		CreatedAt:         template.CreatedAt,
		UpdatedAt:         template.UpdatedAt,
	}
}
