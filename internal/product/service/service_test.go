package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	attrrepository "github.com/rackworks/catalog/internal/attribute/repository"
	"github.com/rackworks/catalog/internal/product/domain"
	"github.com/rackworks/catalog/internal/product/repository"
	padomain "github.com/rackworks/catalog/internal/productattr/domain"
	parepository "github.com/rackworks/catalog/internal/productattr/repository"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	tmplrepository "github.com/rackworks/catalog/internal/template/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
	tmpl string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tmpldomain.ProductTemplate{},
		&attrdomain.AttributeDefinition{},
		&domain.Product{},
		&padomain.ProductAttributeValue{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		TemplateRepo: tmplrepository.Provide(),
		ValueRepo:    parepository.Provide(),
		AttrRepo:     attrrepository.Provide(),
	})

	now := time.Now().UTC()
	tmplID := node.Generate().Int64()
	require.NoError(t, db.Create(&tmpldomain.ProductTemplate{
		ID:                tmplID,
		Name:              "Virtual Machines",
		FilterProperties:  datatypes.NewJSONSlice([]string{"region"}),
		DefaultProperties: datatypes.NewJSONSlice([]string{"region"}),
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}).Error)

	return &fixture{
		svc:  svc,
		db:   db,
		node: node,
		tmpl: snowflake.ID(tmplID).String(),
	}
}

func int64p(v int64) *int64 { return &v }

func TestCreateProductWithImage(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl,
		Name:              "vm.small",
		RegionID:          int64p(3),
		ImageBase64:       "iVBORw==",
	})
	require.NoError(t, err)
	assert.Equal(t, "vm.small", resp.Name)
	assert.Equal(t, "iVBORw==", resp.ImageBase64)
	assert.True(t, resp.Active)
}

func TestCreateProductIgnoresBadImage(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl,
		Name:              "vm.small",
		ImageBase64:       "%%% not base64 %%%",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.ImageBase64)
}

func TestCreateProductUnknownTemplate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.node.Generate().String(),
		Name:              "vm.small",
	})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestListFiltersByIntrinsicProperty(t *testing.T) {
	f := newFixture(t)

	for _, region := range []int64{1, 1, 2} {
		_, err := f.svc.Create(context.Background(), domain.CreateRequest{
			ProductTemplateID: f.tmpl,
			Name:              "vm",
			RegionID:          int64p(region),
		})
		require.NoError(t, err)
	}

	resp, err := f.svc.List(context.Background(), domain.ListRequest{
		TemplateID: f.tmpl,
		RegionID:   int64p(1),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 2)
}

func TestListAppliesPropertyFilterControl(t *testing.T) {
	f := newFixture(t)

	for _, region := range []int64{1, 2} {
		_, err := f.svc.Create(context.Background(), domain.CreateRequest{
			ProductTemplateID: f.tmpl,
			Name:              "vm",
			RegionID:          int64p(region),
		})
		require.NoError(t, err)
	}

	resp, err := f.svc.List(context.Background(), domain.ListRequest{
		TemplateID: f.tmpl,
		Filters:    map[string]string{"prop_region": "2"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, int64(2), *resp.Products[0].RegionID)
	require.NotEmpty(t, resp.Controls)
	assert.Equal(t, "prop_region", resp.Controls[0].ID)
}

func TestListAppliesAttributeFilterControl(t *testing.T) {
	f := newFixture(t)

	// Bind a list attribute as a template filter attribute.
	now := time.Now().UTC()
	attrID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&attrdomain.AttributeDefinition{
		ID:          attrID,
		Key:         "disk_type",
		DisplayName: "Disk Type",
		DataType:    "list",
		ListOptions: datatypes.NewJSONSlice([]string{"ssd", "hdd"}),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
	tmplID, err := snowflake.ParseString(f.tmpl)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&tmpldomain.ProductTemplate{}).
		Where("id = ?", tmplID.Int64()).
		Update("filter_attributes", datatypes.NewJSONSlice([]int64{attrID})).Error)

	ssd, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl, Name: "vm.ssd",
	})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl, Name: "vm.hdd",
	})
	require.NoError(t, err)

	ssdID, err := snowflake.ParseString(ssd.ID)
	require.NoError(t, err)
	value := "ssd"
	require.NoError(t, f.db.Create(&padomain.ProductAttributeValue{
		ID:                    f.node.Generate().Int64(),
		ProductID:             ssdID.Int64(),
		ProductTemplateID:     tmplID.Int64(),
		AttributeDefinitionID: attrID,
		ValueString:           &value,
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}).Error)

	resp, err := f.svc.List(context.Background(), domain.ListRequest{
		TemplateID: f.tmpl,
		Filters:    map[string]string{"attr_" + snowflake.ID(attrID).String(): "ssd"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "vm.ssd", resp.Products[0].Name)
}

func TestGetIncludesDecodedValues(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl, Name: "vm.small",
	})
	require.NoError(t, err)
	productID, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)
	tmplID, err := snowflake.ParseString(f.tmpl)
	require.NoError(t, err)

	now := time.Now().UTC()
	attrID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&attrdomain.AttributeDefinition{
		ID:          attrID,
		Key:         "cpu_cores",
		DisplayName: "CPU Cores",
		DataType:    "integer",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
	cores := int64(8)
	require.NoError(t, f.db.Create(&padomain.ProductAttributeValue{
		ID:                    f.node.Generate().Int64(),
		ProductID:             productID.Int64(),
		ProductTemplateID:     tmplID.Int64(),
		AttributeDefinitionID: attrID,
		ValueInteger:          &cores,
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}).Error)

	got, err := f.svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Values, 1)
	assert.Equal(t, "cpu_cores", got.Values[0].Key)
	assert.Equal(t, "8", got.Values[0].Value)
}

func TestArchiveProduct(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductTemplateID: f.tmpl, Name: "vm.small",
	})
	require.NoError(t, err)

	archived, err := f.svc.Archive(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, archived.Active)
}
