package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	"github.com/rackworks/catalog/internal/observability/metrics"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	"github.com/rackworks/catalog/internal/templateattr/domain"
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
	AttrRepo     attrdomain.Repository
	Metrics      *metrics.Metrics `optional:"true"`
}

type service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	templateRepo tmpldomain.Repository
	attrRepo     attrdomain.Repository
	metrics      *metrics.Metrics
}

func New(p Params) domain.Service {
	return &service{
		db:           p.DB,
		log:          p.Log.Named("templateattr.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		templateRepo: p.TemplateRepo,
		attrRepo:     p.AttrRepo,
		metrics:      p.Metrics,
	}
}

func (s *service) List(ctx context.Context, templateID string) ([]domain.Response, error) {
	tmplID, err := s.resolveTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	bindings, err := s.repo.ListActive(ctx, s.db, tmplID)
	if err != nil {
		s.log.Error("failed to list bindings", zap.Error(err))
		return nil, err
	}
	return s.toResponses(ctx, bindings)
}

// Reconcile replaces the template's active bindings with the requested
// set. Bindings absent from the request are soft-deleted, new ones are
// inserted, surviving ones keep their id and have flags and sort_order
// rewritten from the request order.
func (s *service) Reconcile(ctx context.Context, templateID string, req domain.ReconcileRequest) ([]domain.Response, error) {
	tmplID, err := s.resolveTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	desired := make([]domain.BindingInput, 0, len(req.Bindings))
	desiredIDs := make([]int64, 0, len(req.Bindings))
	seen := make(map[int64]struct{}, len(req.Bindings))
	for _, input := range req.Bindings {
		parsed, err := snowflake.ParseString(strings.TrimSpace(input.AttributeDefinitionID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		id := parsed.Int64()
		if _, dup := seen[id]; dup {
			return nil, domain.ErrDuplicateBinding
		}
		seen[id] = struct{}{}
		desired = append(desired, input)
		desiredIDs = append(desiredIDs, id)
	}

	if len(desiredIDs) > 0 {
		attrs, err := s.attrRepo.ListByIDs(ctx, s.db, desiredIDs)
		if err != nil {
			s.log.Error("failed to resolve attributes", zap.Error(err))
			return nil, err
		}
		known := make(map[int64]struct{}, len(attrs))
		for _, attr := range attrs {
			known[attr.ID] = struct{}{}
		}
		for _, id := range desiredIDs {
			if _, ok := known[id]; !ok {
				return nil, domain.ErrUnknownAttribute
			}
		}
	}

	var inserted, updated, deleted int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read inside the transaction so a concurrent reconcile
		// cannot leave us diffing against a stale snapshot.
		existing, err := s.repo.ListActive(ctx, tx, tmplID)
		if err != nil {
			return err
		}
		byAttr := make(map[int64]domain.TemplateAttribute, len(existing))
		for _, binding := range existing {
			byAttr[binding.AttributeDefinitionID] = binding
		}

		now := time.Now().UTC()
		var toInsert []domain.TemplateAttribute
		var toDelete []int64

		for i, input := range desired {
			attrID := desiredIDs[i]
			order := sortOrder(i)
			if current, ok := byAttr[attrID]; ok {
				delete(byAttr, attrID)
				if current.Required == input.Required &&
					current.OverviewDisplay == input.OverviewDisplay &&
					current.SortOrder == order {
					continue
				}
				current.Required = input.Required
				current.OverviewDisplay = input.OverviewDisplay
				current.SortOrder = order
				current.UpdatedAt = now
				if err := s.repo.Update(ctx, tx, &current); err != nil {
					return err
				}
				updated++
				continue
			}
			toInsert = append(toInsert, domain.TemplateAttribute{
				ID:                    s.genID.Generate().Int64(),
				ProductTemplateID:     tmplID,
				AttributeDefinitionID: attrID,
				Required:              input.Required,
				OverviewDisplay:       input.OverviewDisplay,
				SortOrder:             order,
				Active:                true,
				CreatedAt:             now,
				UpdatedAt:             now,
			})
		}

		for _, leftover := range byAttr {
			toDelete = append(toDelete, leftover.ID)
		}

		if err := s.repo.SoftDeleteBatch(ctx, tx, toDelete); err != nil {
			return err
		}
		if len(byAttr) > 0 {
			// Unbound attributes must not linger in the template's
			// filter_attributes list, or the catalog keeps rendering a
			// filter control no product can ever match.
			if err := s.pruneFilterAttributes(ctx, tx, tmplID, byAttr, now); err != nil {
				return err
			}
		}
		if err := s.repo.CreateBatch(ctx, tx, toInsert); err != nil {
			return err
		}
		inserted = len(toInsert)
		deleted = len(toDelete)
		return nil
	})
	if err != nil {
		s.log.Error("failed to reconcile bindings", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordReconcile(ctx, "template_attributes", inserted, updated, deleted)
	s.log.Info("reconciled bindings",
		zap.String("template_id", templateID),
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
	)

	bindings, err := s.repo.ListActive(ctx, s.db, tmplID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, bindings)
}

func (s *service) pruneFilterAttributes(ctx context.Context, tx *gorm.DB, tmplID int64, removed map[int64]domain.TemplateAttribute, now time.Time) error {
	template, err := s.templateRepo.FindByID(ctx, tx, tmplID)
	if err != nil {
		return err
	}
	if template == nil || len(template.FilterAttributes) == 0 {
		return nil
	}

	kept := make([]int64, 0, len(template.FilterAttributes))
	for _, attrID := range template.FilterAttributes {
		if _, gone := removed[attrID]; gone {
			continue
		}
		kept = append(kept, attrID)
	}
	if len(kept) == len(template.FilterAttributes) {
		return nil
	}

	template.FilterAttributes = kept
	template.UpdatedAt = now
	return s.templateRepo.Update(ctx, tx, template)
}

func (s *service) resolveTemplate(ctx context.Context, templateID string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(templateID))
	if err != nil {
		return 0, domain.ErrInvalidID
	}

	template, err := s.templateRepo.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		s.log.Error("failed to find template", zap.Error(err))
		return 0, err
	}
	if template == nil {
		return 0, domain.ErrTemplateNotFound
	}
	return template.ID, nil
}

func (s *service) toResponses(ctx context.Context, bindings []domain.TemplateAttribute) ([]domain.Response, error) {
	attrIDs := make([]int64, 0, len(bindings))
	for _, binding := range bindings {
		attrIDs = append(attrIDs, binding.AttributeDefinitionID)
	}

	attrByID := make(map[int64]attrdomain.AttributeDefinition, len(attrIDs))
	if len(attrIDs) > 0 {
		attrs, err := s.attrRepo.ListByIDs(ctx, s.db, attrIDs)
		if err != nil {
			s.log.Error("failed to resolve attributes", zap.Error(err))
			return nil, err
		}
		for _, attr := range attrs {
			attrByID[attr.ID] = attr
		}
	}

	resp := make([]domain.Response, 0, len(bindings))
	for _, binding := range bindings {
		item := domain.Response{
			ID:                    snowflake.ID(binding.ID).String(),
			ProductTemplateID:     snowflake.ID(binding.ProductTemplateID).String(),
			AttributeDefinitionID: snowflake.ID(binding.AttributeDefinitionID).String(),
			Required:              binding.Required,
			OverviewDisplay:       binding.OverviewDisplay,
			SortOrder:             binding.SortOrder,
			Active:                binding.Active,
			CreatedAt:             binding.CreatedAt,
			UpdatedAt:             binding.UpdatedAt,
			DeletedAt:             binding.DeletedAt,
		}
		if attr, ok := attrByID[binding.AttributeDefinitionID]; ok {
			item.AttributeKey = attr.Key
			item.AttributeDisplayName = attr.DisplayName
			item.DataType = attr.DataType
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func sortOrder(index int) string {
	return fmt.Sprintf("%04d", index+1)
}
