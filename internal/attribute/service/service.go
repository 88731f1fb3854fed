package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/rackworks/catalog/internal/attribute/domain"
	obsmetrics "github.com/rackworks/catalog/internal/observability/metrics"
	"github.com/rackworks/catalog/internal/typedvalue"
	"github.com/rackworks/catalog/pkg/db"
	"github.com/rackworks/catalog/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var keyPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

const (
	defaultPageSize = 50
	maxPageSize     = 250
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	genID   *snowflake.Node
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("attribute.service"),
		repo:    p.Repo,
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, domain.ErrInvalidDisplayName
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		key = deriveKey(displayName)
	}
	if len(key) < 2 || !keyPattern.MatchString(key) {
		return nil, domain.ErrInvalidKey
	}

	dataType := typedvalue.ParseDataType(req.DataType)
	if !typedvalue.Known(dataType) {
		return nil, domain.ErrInvalidDataType
	}

	defaultValue := trimPtr(req.DefaultValue)
	if err := validateDefault(dataType, defaultValue, req.ValidationRules, req.ListOptions); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByKey(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateKey
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	attr := &domain.AttributeDefinition{
		ID:           s.genID.Generate().Int64(),
		Key:          key,
		DisplayName:  displayName,
		DataType:     string(dataType),
		Unit:         trimPtr(req.Unit),
		DefaultValue: defaultValue,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.ValidationRules != nil {
		attr.ValidationRules = datatypes.JSONMap(req.ValidationRules)
	}
	if len(req.Tags) > 0 {
		attr.Tags = datatypes.NewJSONSlice(req.Tags)
	}
	if len(req.ListOptions) > 0 {
		attr.ListOptions = datatypes.NewJSONSlice(req.ListOptions)
	}

	if err := s.repo.Create(ctx, s.db, attr); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "attribute_definition", "create")
	resp := s.toResponse(attr)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	filter := domain.ListRequest{
		Key:      strings.TrimSpace(req.Key),
		DataType: strings.TrimSpace(req.DataType),
		Tag:      strings.TrimSpace(req.Tag),
		Active:   req.Active,
		SortBy:   strings.TrimSpace(req.SortBy),
		OrderBy:  strings.TrimSpace(req.OrderBy),
	}

	paged := req.PageSize > 0 || strings.TrimSpace(req.PageToken) != ""
	if paged {
		filter.PageSize = pagination.Clamp(req.PageSize, defaultPageSize, maxPageSize)
		if token := strings.TrimSpace(req.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err != nil {
				return nil, domain.ErrInvalidPageToken
			}
			id, err := snowflake.ParseString(cursor.ID)
			if err != nil {
				return nil, domain.ErrInvalidPageToken
			}
			filter.CursorID = int64(id)
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	result := &domain.ListResult{}
	if paged {
		items, result.PageInfo = pagination.BuildPageInfo(items, filter.PageSize, func(item domain.AttributeDefinition) string {
			token, _ := pagination.EncodeCursor(pagination.Cursor{ID: snowflake.ID(item.ID).String()})
			return token
		})
	}

	result.Attributes = make([]domain.Response, 0, len(items))
	for _, item := range items {
		result.Attributes = append(result.Attributes, s.toResponse(&item))
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	attr, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(attr)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	if req.DataType != nil {
		// Changing a type would orphan every value stored under the old
		// slot, so it is rejected outright.
		return nil, domain.ErrDataTypeImmutable
	}

	attr, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		displayName := strings.TrimSpace(*req.DisplayName)
		if displayName == "" {
			return nil, domain.ErrInvalidDisplayName
		}
		attr.DisplayName = displayName
	}
	if req.Unit != nil {
		attr.Unit = trimPtr(req.Unit)
	}
	if req.ValidationRules != nil {
		attr.ValidationRules = datatypes.JSONMap(req.ValidationRules)
	}
	if req.Tags != nil {
		attr.Tags = datatypes.NewJSONSlice(req.Tags)
	}
	if req.ListOptions != nil {
		attr.ListOptions = datatypes.NewJSONSlice(req.ListOptions)
	}
	if req.DefaultValue != nil {
		attr.DefaultValue = trimPtr(req.DefaultValue)
	}
	if req.Active != nil {
		attr.Active = *req.Active
	}

	dataType := typedvalue.ParseDataType(attr.DataType)
	if err := validateDefault(dataType, attr.DefaultValue, attr.ValidationRules, attr.ListOptions); err != nil {
		return nil, err
	}

	attr.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, attr); err != nil {
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "attribute_definition", "update")
	resp := s.toResponse(attr)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	attr, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	attr.Active = false
	attr.DeletedAt = &now
	attr.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, attr); err != nil {
		return nil, err
	}

	s.metrics.RecordWrite(ctx, "attribute_definition", "archive")
	resp := s.toResponse(attr)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.AttributeDefinition, error) {
	attrID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	attr, err := s.repo.FindByID(ctx, s.db, attrID.Int64())
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, domain.ErrNotFound
	}
	return attr, nil
}

func (s *Service) toResponse(attr *domain.AttributeDefinition) domain.Response {
	resp := domain.Response{
		ID:           snowflake.ID(attr.ID).String(),
		Key:          attr.Key,
		DisplayName:  attr.DisplayName,
		DataType:     attr.DataType,
		Unit:         attr.Unit,
		DefaultValue: attr.DefaultValue,
		Active:       attr.Active,
		CreatedAt:    attr.CreatedAt,
		UpdatedAt:    attr.UpdatedAt,
	}
	if len(attr.ValidationRules) > 0 {
		resp.ValidationRules = map[string]any(attr.ValidationRules)
	}
	if len(attr.Tags) > 0 {
		resp.Tags = []string(attr.Tags)
	}
	if len(attr.ListOptions) > 0 {
		resp.ListOptions = []string(attr.ListOptions)
	}
	return resp
}

// deriveKey turns a display name into a machine key.
func deriveKey(displayName string) string {
	return strings.ReplaceAll(slug.Make(displayName), "-", "_")
}

func validateDefault(dataType typedvalue.DataType, defaultValue *string, rules map[string]any, listOptions []string) error {
	if defaultValue == nil {
		return nil
	}
	raw := *defaultValue

	if dataType == typedvalue.TypeList && len(listOptions) == 0 {
		return domain.ErrMissingListOptions
	}
	if dataType == typedvalue.TypeList && !containsString(listOptions, raw) {
		return domain.ErrInvalidDefault
	}
	if len(domain.EvaluateRules(rules, dataType, raw)) > 0 {
		return domain.ErrInvalidDefault
	}
	if dataType != typedvalue.TypeBoolean && typedvalue.Encode(dataType, raw).IsEmpty() {
		return domain.ErrInvalidDefault
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
