package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	attrrepository "github.com/rackworks/catalog/internal/attribute/repository"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	prodrepository "github.com/rackworks/catalog/internal/product/repository"
	"github.com/rackworks/catalog/internal/productattr/domain"
	"github.com/rackworks/catalog/internal/productattr/repository"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
	tarepository "github.com/rackworks/catalog/internal/templateattr/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	db      *gorm.DB
	node    *snowflake.Node
	tmplID  int64
	product string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tmpldomain.ProductTemplate{},
		&attrdomain.AttributeDefinition{},
		&tadomain.TemplateAttribute{},
		&proddomain.Product{},
		&domain.ProductAttributeValue{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		ProductRepo: prodrepository.Provide(),
		BindingRepo: tarepository.Provide(),
		AttrRepo:    attrrepository.Provide(),
	})

	now := time.Now().UTC()
	tmplID := node.Generate().Int64()
	require.NoError(t, db.Create(&tmpldomain.ProductTemplate{
		ID: tmplID, Name: "Virtual Machines", Active: true, CreatedAt: now, UpdatedAt: now,
	}).Error)

	productID := node.Generate().Int64()
	require.NoError(t, db.Create(&proddomain.Product{
		ID: productID, ProductTemplateID: tmplID, Name: "vm.small", Active: true,
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	return &fixture{
		svc:     svc,
		db:      db,
		node:    node,
		tmplID:  tmplID,
		product: snowflake.ID(productID).String(),
	}
}

func (f *fixture) bindAttribute(t *testing.T, dataType string, required bool, rules map[string]any) string {
	t.Helper()

	now := time.Now().UTC()
	attrID := f.node.Generate().Int64()
	attr := attrdomain.AttributeDefinition{
		ID:          attrID,
		Key:         "attr_" + snowflake.ID(attrID).String(),
		DisplayName: "Attribute",
		DataType:    dataType,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rules != nil {
		attr.ValidationRules = datatypes.JSONMap(rules)
	}
	require.NoError(t, f.db.Create(&attr).Error)

	require.NoError(t, f.db.Create(&tadomain.TemplateAttribute{
		ID:                    f.node.Generate().Int64(),
		ProductTemplateID:     f.tmplID,
		AttributeDefinitionID: attrID,
		Required:              required,
		SortOrder:             "0001",
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}).Error)

	return snowflake.ID(attrID).String()
}

func values(pairs ...string) domain.ReconcileRequest {
	req := domain.ReconcileRequest{}
	for i := 0; i+1 < len(pairs); i += 2 {
		req.Values = append(req.Values, domain.DesiredValue{
			AttributeDefinitionID: pairs[i],
			Raw:                   pairs[i+1],
		})
	}
	return req
}

func TestReconcileStoresTypedValue(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "integer", false, nil)

	resp, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "16"))
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "16", resp[0].Value)
	assert.Equal(t, "integer", resp[0].DataType)

	var row domain.ProductAttributeValue
	require.NoError(t, f.db.First(&row).Error)
	require.NotNil(t, row.ValueInteger)
	assert.EqualValues(t, 16, *row.ValueInteger)
	assert.Nil(t, row.ValueString)
}

func TestReconcileEmptyValueLeavesNoRow(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "string", false, nil)

	resp, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "   "))
	require.NoError(t, err)
	assert.Empty(t, resp)

	var count int64
	require.NoError(t, f.db.Model(&domain.ProductAttributeValue{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReconcileEmptyValueUnsetsExistingRow(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "string", false, nil)

	_, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "ssd"))
	require.NoError(t, err)

	resp, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, ""))
	require.NoError(t, err)
	assert.Empty(t, resp)

	var row domain.ProductAttributeValue
	require.NoError(t, f.db.First(&row).Error)
	assert.False(t, row.Active)
	assert.NotNil(t, row.DeletedAt)
}

func TestReconcileRejectsUnboundAttribute(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Reconcile(context.Background(), f.product, values(f.node.Generate().String(), "x"))
	assert.ErrorIs(t, err, domain.ErrAttributeNotBound)
}

func TestReconcileRequiredValueMustBePresent(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "string", true, nil)

	_, err := f.svc.Reconcile(context.Background(), f.product, domain.ReconcileRequest{})
	assert.ErrorIs(t, err, domain.ErrRequiredValueEmpty)

	_, err = f.svc.Reconcile(context.Background(), f.product, values(attrID, " "))
	assert.ErrorIs(t, err, domain.ErrRequiredValueEmpty)
}

func TestReconcileValidatesAgainstRules(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "integer", false, map[string]any{"min": 1, "max": 64})

	_, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "128"))
	assert.ErrorIs(t, err, domain.ErrValueInvalid)

	resp, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "32"))
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "32", resp[0].Value)
}

func TestReconcileRejectsMalformedTypedValue(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "integer", false, nil)

	_, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "lots"))
	assert.ErrorIs(t, err, domain.ErrValueInvalid)
}

func TestReconcileKeepsUnchangedRow(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "decimal", false, nil)

	first, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "1.5"))
	require.NoError(t, err)

	second, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "1.5"))
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestReconcileRejectsDuplicateAttribute(t *testing.T) {
	f := newFixture(t)
	attrID := f.bindAttribute(t, "string", false, nil)

	_, err := f.svc.Reconcile(context.Background(), f.product, values(attrID, "a", attrID, "b"))
	assert.ErrorIs(t, err, domain.ErrDuplicateValue)
}

func TestReconcileUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Reconcile(context.Background(), f.node.Generate().String(), domain.ReconcileRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
