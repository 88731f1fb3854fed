package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	"github.com/rackworks/catalog/internal/observability/metrics"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	"github.com/rackworks/catalog/internal/productattr/domain"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
	"github.com/rackworks/catalog/internal/typedvalue"
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
	BindingRepo tadomain.Repository
	AttrRepo    attrdomain.Repository
	Metrics     *metrics.Metrics `optional:"true"`
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	productRepo proddomain.Repository
	bindingRepo tadomain.Repository
	attrRepo    attrdomain.Repository
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("productattr.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
		bindingRepo: p.BindingRepo,
		attrRepo:    p.AttrRepo,
		metrics:     p.Metrics,
	}
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]domain.Response, error) {
	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	values, err := s.repo.ListActive(ctx, s.db, product.ID)
	if err != nil {
		s.log.Error("failed to list values", zap.Error(err))
		return nil, err
	}
	return s.toResponses(ctx, values)
}

// Reconcile replaces the product's stored values with the requested set.
// An empty raw value unsets the attribute: no row is written for it and
// any existing row is soft-deleted.
func (s *service) Reconcile(ctx context.Context, productID string, req domain.ReconcileRequest) ([]domain.Response, error) {
	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	bindings, err := s.bindingRepo.ListActive(ctx, s.db, product.ProductTemplateID)
	if err != nil {
		s.log.Error("failed to list bindings", zap.Error(err))
		return nil, err
	}
	bindingByAttr := make(map[int64]tadomain.TemplateAttribute, len(bindings))
	attrIDs := make([]int64, 0, len(bindings))
	for _, binding := range bindings {
		bindingByAttr[binding.AttributeDefinitionID] = binding
		attrIDs = append(attrIDs, binding.AttributeDefinitionID)
	}

	attrByID := make(map[int64]attrdomain.AttributeDefinition, len(attrIDs))
	if len(attrIDs) > 0 {
		defs, err := s.attrRepo.ListByIDs(ctx, s.db, attrIDs)
		if err != nil {
			s.log.Error("failed to resolve attributes", zap.Error(err))
			return nil, err
		}
		for _, def := range defs {
			attrByID[def.ID] = def
		}
	}

	// rawByAttr holds the validated, non-empty values to store.
	rawByAttr := make(map[int64]string, len(req.Values))
	seen := make(map[int64]struct{}, len(req.Values))
	for _, desired := range req.Values {
		parsed, err := snowflake.ParseString(strings.TrimSpace(desired.AttributeDefinitionID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		attrID := parsed.Int64()
		if _, dup := seen[attrID]; dup {
			return nil, domain.ErrDuplicateValue
		}
		seen[attrID] = struct{}{}

		if _, bound := bindingByAttr[attrID]; !bound {
			return nil, domain.ErrAttributeNotBound
		}
		def, ok := attrByID[attrID]
		if !ok {
			return nil, domain.ErrAttributeNotBound
		}

		raw := strings.TrimSpace(desired.Raw)
		if raw == "" {
			continue
		}
		dataType := typedvalue.ParseDataType(def.DataType)
		if violations := attrdomain.EvaluateRules(def.ValidationRules, dataType, raw); len(violations) > 0 {
			return nil, domain.ErrValueInvalid
		}
		if typedvalue.Encode(dataType, raw).IsEmpty() && dataType != typedvalue.TypeBoolean {
			return nil, domain.ErrValueInvalid
		}
		rawByAttr[attrID] = raw
	}

	for _, binding := range bindings {
		if !binding.Required {
			continue
		}
		if _, ok := rawByAttr[binding.AttributeDefinitionID]; !ok {
			return nil, domain.ErrRequiredValueEmpty
		}
	}

	var inserted, updated, deleted int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.ListActive(ctx, tx, product.ID)
		if err != nil {
			return err
		}
		byAttr := make(map[int64]domain.ProductAttributeValue, len(existing))
		for _, value := range existing {
			byAttr[value.AttributeDefinitionID] = value
		}

		now := time.Now().UTC()
		var toInsert []domain.ProductAttributeValue
		var toDelete []int64

		for attrID, raw := range rawByAttr {
			def := attrByID[attrID]
			dataType := typedvalue.ParseDataType(def.DataType)
			slots := typedvalue.Encode(dataType, raw)

			if current, ok := byAttr[attrID]; ok {
				delete(byAttr, attrID)
				if typedvalue.Decode(dataType, current.Slots()) == typedvalue.Decode(dataType, slots) {
					continue
				}
				current.SetSlots(slots)
				current.UpdatedAt = now
				if err := s.repo.Update(ctx, tx, &current); err != nil {
					return err
				}
				updated++
				continue
			}

			row := domain.ProductAttributeValue{
				ID:                    s.genID.Generate().Int64(),
				ProductID:             product.ID,
				ProductTemplateID:     product.ProductTemplateID,
				AttributeDefinitionID: attrID,
				Active:                true,
				CreatedAt:             now,
				UpdatedAt:             now,
			}
			row.SetSlots(slots)
			toInsert = append(toInsert, row)
		}

		for _, leftover := range byAttr {
			toDelete = append(toDelete, leftover.ID)
		}

		if err := s.repo.SoftDeleteBatch(ctx, tx, toDelete); err != nil {
			return err
		}
		if err := s.repo.CreateBatch(ctx, tx, toInsert); err != nil {
			return err
		}
		inserted = len(toInsert)
		deleted = len(toDelete)
		return nil
	})
	if err != nil {
		s.log.Error("failed to reconcile values", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordReconcile(ctx, "product_attribute_values", inserted, updated, deleted)
	s.log.Info("reconciled values",
		zap.String("product_id", productID),
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
	)

	values, err := s.repo.ListActive(ctx, s.db, product.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, values)
}

func (s *service) resolveProduct(ctx context.Context, productID string) (*proddomain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.productRepo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *service) toResponses(ctx context.Context, values []domain.ProductAttributeValue) ([]domain.Response, error) {
	attrIDs := make([]int64, 0, len(values))
	for _, value := range values {
		attrIDs = append(attrIDs, value.AttributeDefinitionID)
	}

	attrByID := make(map[int64]attrdomain.AttributeDefinition, len(attrIDs))
	if len(attrIDs) > 0 {
		defs, err := s.attrRepo.ListByIDs(ctx, s.db, attrIDs)
		if err != nil {
			s.log.Error("failed to resolve attributes", zap.Error(err))
			return nil, err
		}
		for _, def := range defs {
			attrByID[def.ID] = def
		}
	}

	resp := make([]domain.Response, 0, len(values))
	for _, value := range values {
		item := domain.Response{
			ID:                    snowflake.ID(value.ID).String(),
			ProductID:             snowflake.ID(value.ProductID).String(),
			AttributeDefinitionID: snowflake.ID(value.AttributeDefinitionID).String(),
			CreatedAt:             value.CreatedAt,
			UpdatedAt:             value.UpdatedAt,
		}
		if def, ok := attrByID[value.AttributeDefinitionID]; ok {
			item.AttributeKey = def.Key
			item.DataType = def.DataType
			item.Value = typedvalue.Decode(typedvalue.ParseDataType(def.DataType), value.Slots())
		}
		resp = append(resp, item)
	}
	return resp, nil
}
