package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	attrrepository "github.com/rackworks/catalog/internal/attribute/repository"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	tmplrepository "github.com/rackworks/catalog/internal/template/repository"
	"github.com/rackworks/catalog/internal/templateattr/domain"
	"github.com/rackworks/catalog/internal/templateattr/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	tmpl  string
	attrs []string
}

func newFixture(t *testing.T, attrCount int) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tmpldomain.ProductTemplate{},
		&attrdomain.AttributeDefinition{},
		&domain.TemplateAttribute{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		TemplateRepo: tmplrepository.Provide(),
		AttrRepo:     attrrepository.Provide(),
	})

	now := time.Now().UTC()
	tmplID := node.Generate().Int64()
	require.NoError(t, db.Create(&tmpldomain.ProductTemplate{
		ID:        tmplID,
		Name:      "Virtual Machines",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	attrs := make([]string, 0, attrCount)
	for i := 0; i < attrCount; i++ {
		id := node.Generate().Int64()
		require.NoError(t, db.Create(&attrdomain.AttributeDefinition{
			ID:          id,
			Key:         "attr_" + snowflake.ID(id).String(),
			DisplayName: "Attribute",
			DataType:    "string",
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error)
		attrs = append(attrs, snowflake.ID(id).String())
	}

	return &fixture{
		svc:   svc,
		db:    db,
		node:  node,
		tmpl:  snowflake.ID(tmplID).String(),
		attrs: attrs,
	}
}

func bindings(ids ...string) domain.ReconcileRequest {
	req := domain.ReconcileRequest{}
	for _, id := range ids {
		req.Bindings = append(req.Bindings, domain.BindingInput{AttributeDefinitionID: id})
	}
	return req
}

func TestReconcileCreatesBindingsInOrder(t *testing.T) {
	f := newFixture(t, 3)

	resp, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[2], f.attrs[0], f.attrs[1]))
	require.NoError(t, err)
	require.Len(t, resp, 3)
	assert.Equal(t, "0001", resp[0].SortOrder)
	assert.Equal(t, "0002", resp[1].SortOrder)
	assert.Equal(t, "0003", resp[2].SortOrder)
	assert.Equal(t, f.attrs[2], resp[0].AttributeDefinitionID)
	assert.Equal(t, f.attrs[0], resp[1].AttributeDefinitionID)
	assert.Equal(t, f.attrs[1], resp[2].AttributeDefinitionID)
}

func TestReconcileKeepsSurvivingBindingIDs(t *testing.T) {
	f := newFixture(t, 2)

	first, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0], f.attrs[1]))
	require.NoError(t, err)
	survivorID := first[0].ID

	second, err := f.svc.Reconcile(context.Background(), f.tmpl, domain.ReconcileRequest{
		Bindings: []domain.BindingInput{
			{AttributeDefinitionID: f.attrs[0], Required: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, survivorID, second[0].ID)
	assert.True(t, second[0].Required)
}

func TestReconcileSoftDeletesRemovedBindings(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0], f.attrs[1]))
	require.NoError(t, err)

	_, err = f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[1]))
	require.NoError(t, err)

	var rows []domain.TemplateAttribute
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 2)

	var deleted int
	for _, row := range rows {
		if row.DeletedAt != nil {
			assert.False(t, row.Active)
			deleted++
		}
	}
	assert.Equal(t, 1, deleted)
}

func TestReconcileEmptyRequestClearsBindings(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs...))
	require.NoError(t, err)

	resp, err := f.svc.Reconcile(context.Background(), f.tmpl, domain.ReconcileRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp)
}

func TestReconcileReordersExistingBindings(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0], f.attrs[1]))
	require.NoError(t, err)

	resp, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[1], f.attrs[0]))
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, f.attrs[1], resp[0].AttributeDefinitionID)
	assert.Equal(t, "0001", resp[0].SortOrder)
	assert.Equal(t, f.attrs[0], resp[1].AttributeDefinitionID)
	assert.Equal(t, "0002", resp[1].SortOrder)
}

func TestReconcilePrunesUnboundFilterAttributes(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0], f.attrs[1]))
	require.NoError(t, err)

	keptID, err := snowflake.ParseString(f.attrs[1])
	require.NoError(t, err)
	removedID, err := snowflake.ParseString(f.attrs[0])
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&tmpldomain.ProductTemplate{}).
		Where("name = ?", "Virtual Machines").
		Update("filter_attributes", datatypes.NewJSONSlice([]int64{removedID.Int64(), keptID.Int64()})).Error)

	_, err = f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[1]))
	require.NoError(t, err)

	var template tmpldomain.ProductTemplate
	require.NoError(t, f.db.Where("name = ?", "Virtual Machines").Take(&template).Error)
	assert.Equal(t, []int64{keptID.Int64()}, []int64(template.FilterAttributes))

	_, err = f.svc.Reconcile(context.Background(), f.tmpl, domain.ReconcileRequest{})
	require.NoError(t, err)
	require.NoError(t, f.db.Where("name = ?", "Virtual Machines").Take(&template).Error)
	assert.Empty(t, []int64(template.FilterAttributes))
}

func TestReconcileRejectsDuplicateBinding(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0], f.attrs[0]))
	assert.ErrorIs(t, err, domain.ErrDuplicateBinding)
}

func TestReconcileRejectsUnknownAttribute(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.node.Generate().String()))
	assert.ErrorIs(t, err, domain.ErrUnknownAttribute)
}

func TestReconcileUnknownTemplate(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Reconcile(context.Background(), f.node.Generate().String(), domain.ReconcileRequest{})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestListIncludesAttributeMetadata(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.Reconcile(context.Background(), f.tmpl, bindings(f.attrs[0]))
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), f.tmpl)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "attr_"+f.attrs[0], resp[0].AttributeKey)
	assert.Equal(t, "string", resp[0].DataType)
}
