package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	"github.com/rackworks/catalog/internal/filterview"
	"github.com/rackworks/catalog/internal/observability/metrics"
	"github.com/rackworks/catalog/internal/product/domain"
	padomain "github.com/rackworks/catalog/internal/productattr/domain"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	"github.com/rackworks/catalog/internal/typedvalue"
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
	TemplateRepo tmpldomain.Repository
	ValueRepo    padomain.Repository
	AttrRepo     attrdomain.Repository
	Metrics      *metrics.Metrics `optional:"true"`
}

type service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	templateRepo tmpldomain.Repository
	valueRepo    padomain.Repository
	attrRepo     attrdomain.Repository
	metrics      *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:           p.DB,
		log:          p.Log.Named("product.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		templateRepo: p.TemplateRepo,
		valueRepo:    p.ValueRepo,
		attrRepo:     p.AttrRepo,
		metrics:      p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	tmplID, err := snowflake.ParseString(strings.TrimSpace(req.ProductTemplateID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	template, err := s.templateRepo.FindByID(ctx, s.db, tmplID.Int64())
	if err != nil {
		s.log.Error("failed to find template", zap.Error(err))
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrTemplateNotFound
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:                s.genID.Generate().Int64(),
		ProductTemplateID: template.ID,
		Name:              name,
		ScopeID:           req.ScopeID,
		ServiceID:         req.ServiceID,
		ServiceTypeID:     req.ServiceTypeID,
		RegionID:          req.RegionID,
		Image:             domain.DecodeImage(req.ImageBase64),
		Active:            active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, s.db, &product); err != nil {
		s.log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "product", "create")
	resp := toResponse(product, nil)
	return &resp, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	var template *tmpldomain.ProductTemplate
	var templateID int64
	if strings.TrimSpace(req.TemplateID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.TemplateID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		template, err = s.templateRepo.FindByID(ctx, s.db, parsed.Int64())
		if err != nil {
			s.log.Error("failed to find template", zap.Error(err))
			return nil, err
		}
		if template == nil {
			return nil, domain.ErrTemplateNotFound
		}
		templateID = template.ID
	}

	products, err := s.repo.List(ctx, s.db, templateID, req)
	if err != nil {
		s.log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	var controls []filterview.Control
	if template != nil {
		controls, err = s.buildControls(ctx, template)
		if err != nil {
			return nil, err
		}
	}

	// Attribute filters need the decoded values, so matching happens here
	// rather than in SQL.
	if len(controls) > 0 && hasFilterValues(req.Filters) {
		products, err = s.applyFilters(ctx, products, controls, req.Filters)
		if err != nil {
			return nil, err
		}
	}

	resp := &domain.ListResponse{
		Products: make([]domain.Response, 0, len(products)),
		Controls: controls,
	}
	for _, product := range products {
		resp.Products = append(resp.Products, toResponse(product, nil))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Response, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	values, err := s.decodedValues(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(*product, values)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	product, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		product.Name = name
	}
	if req.ScopeID != nil {
		product.ScopeID = req.ScopeID
	}
	if req.ServiceID != nil {
		product.ServiceID = req.ServiceID
	}
	if req.ServiceTypeID != nil {
		product.ServiceTypeID = req.ServiceTypeID
	}
	if req.RegionID != nil {
		product.RegionID = req.RegionID
	}
	if req.ImageBase64 != nil {
		product.Image = domain.DecodeImage(*req.ImageBase64)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, product); err != nil {
		s.log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "product", "update")
	resp := toResponse(*product, nil)
	return &resp, nil
}

func (s *service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.Active = false
	product.DeletedAt = &now
	product.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, product); err != nil {
		s.log.Error("failed to archive product", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "product", "archive")
	resp := toResponse(*product, nil)
	return &resp, nil
}

func (s *service) find(ctx context.Context, id string) (*domain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// buildControls derives the filter bar from the template's filterable
// properties and filter attributes.
func (s *service) buildControls(ctx context.Context, template *tmpldomain.ProductTemplate) ([]filterview.Control, error) {
	var attrs []filterview.Attribute
	if len(template.FilterAttributes) > 0 {
		defs, err := s.attrRepo.ListByIDs(ctx, s.db, template.FilterAttributes)
		if err != nil {
			s.log.Error("failed to resolve filter attributes", zap.Error(err))
			return nil, err
		}
		byID := make(map[int64]attrdomain.AttributeDefinition, len(defs))
		for _, def := range defs {
			byID[def.ID] = def
		}
		// Preserve the template's declared order.
		for _, id := range template.FilterAttributes {
			def, ok := byID[id]
			if !ok {
				continue
			}
			attrs = append(attrs, filterview.Attribute{
				ID:          snowflake.ID(def.ID).String(),
				Key:         def.Key,
				DisplayName: def.DisplayName,
				DataType:    typedvalue.ParseDataType(def.DataType),
				ListOptions: def.ListOptions,
			})
		}
	}
	return filterview.BuildControls(template.FilterProperties, attrs), nil
}

func (s *service) applyFilters(ctx context.Context, products []domain.Product, controls []filterview.Control, filters map[string]string) ([]domain.Product, error) {
	productIDs := make([]int64, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}
	values, err := s.valueRepo.ListActiveByProducts(ctx, s.db, productIDs)
	if err != nil {
		s.log.Error("failed to load attribute values", zap.Error(err))
		return nil, err
	}

	attrIDs := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value.AttributeDefinitionID]; ok {
			continue
		}
		seen[value.AttributeDefinitionID] = struct{}{}
		attrIDs = append(attrIDs, value.AttributeDefinitionID)
	}
	attrTypes := make(map[int64]typedvalue.DataType, len(attrIDs))
	if len(attrIDs) > 0 {
		defs, err := s.attrRepo.ListByIDs(ctx, s.db, attrIDs)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			attrTypes[def.ID] = typedvalue.ParseDataType(def.DataType)
		}
	}

	valuesByProduct := make(map[int64]map[string]string, len(products))
	for _, value := range values {
		row, ok := valuesByProduct[value.ProductID]
		if !ok {
			row = make(map[string]string)
			valuesByProduct[value.ProductID] = row
		}
		dataType := attrTypes[value.AttributeDefinitionID]
		row[snowflake.ID(value.AttributeDefinitionID).String()] = typedvalue.Decode(dataType, value.Slots())
	}

	matched := make([]domain.Product, 0, len(products))
	for _, product := range products {
		row := filterview.Row{
			PropertyIDs: make(map[string]int64, len(filterview.PropertyKeys)),
			Values:      valuesByProduct[product.ID],
		}
		for _, key := range filterview.PropertyKeys {
			if id := product.PropertyID(key); id != nil {
				row.PropertyIDs[key] = *id
			}
		}
		if filterview.Match(row, controls, filters) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func (s *service) decodedValues(ctx context.Context, productID int64) ([]domain.ValueView, error) {
	values, err := s.valueRepo.ListActive(ctx, s.db, productID)
	if err != nil {
		s.log.Error("failed to load attribute values", zap.Error(err))
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	attrIDs := make([]int64, 0, len(values))
	for _, value := range values {
		attrIDs = append(attrIDs, value.AttributeDefinitionID)
	}
	defs, err := s.attrRepo.ListByIDs(ctx, s.db, attrIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]attrdomain.AttributeDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}

	views := make([]domain.ValueView, 0, len(values))
	for _, value := range values {
		view := domain.ValueView{
			AttributeDefinitionID: snowflake.ID(value.AttributeDefinitionID).String(),
		}
		if def, ok := byID[value.AttributeDefinitionID]; ok {
			view.Key = def.Key
			view.DisplayName = def.DisplayName
			view.DataType = def.DataType
			view.Value = typedvalue.Decode(typedvalue.ParseDataType(def.DataType), value.Slots())
		}
		views = append(views, view)
	}
	return views, nil
}

func hasFilterValues(filters map[string]string) bool {
	for _, value := range filters {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

func toResponse(product domain.Product, values []domain.ValueView) domain.Response {
	return domain.Response{
		ID:                snowflake.ID(product.ID).String(),
		ProductTemplateID: snowflake.ID(product.ProductTemplateID).String(),
		Name:              product.Name,
		ScopeID:           product.ScopeID,
		ServiceID:         product.ServiceID,
		ServiceTypeID:     product.ServiceTypeID,
		RegionID:          product.RegionID,
		ImageBase64:       domain.EncodeImage(product.Image),
		Values:            values,
		Active:            product.Active,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}
