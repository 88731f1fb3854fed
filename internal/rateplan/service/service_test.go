package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	prodrepository "github.com/rackworks/catalog/internal/product/repository"
	"github.com/rackworks/catalog/internal/rateplan/domain"
	"github.com/rackworks/catalog/internal/rateplan/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, string, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&proddomain.Product{}, &domain.RatePlan{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		ProductRepo: prodrepository.Provide(),
	})

	now := time.Now().UTC()
	productID := node.Generate().Int64()
	require.NoError(t, db.Create(&proddomain.Product{
		ID: productID, ProductTemplateID: node.Generate().Int64(), Name: "vm.small",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}).Error)

	return svc, snowflake.ID(productID).String(), node
}

func TestCreateRatePlan(t *testing.T) {
	svc, productID, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		ProductID:    productID,
		Name:         "on-demand",
		PriceHourly:  0.12,
		PriceMonthly: 79,
		Currency:     "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, 0.12, resp.PriceHourly)
	assert.True(t, resp.Active)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc, productID, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		ProductID:   productID,
		Name:        "on-demand",
		PriceHourly: -1,
		Currency:    "USD",
	})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		ProductID: node.Generate().String(),
		Name:      "on-demand",
		Currency:  "USD",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestUpdateValidatesCurrency(t *testing.T) {
	svc, productID, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		ProductID: productID, Name: "on-demand", Currency: "USD",
	})
	require.NoError(t, err)

	bad := "dollars"
	_, err = svc.Update(context.Background(), domain.UpdateRequest{ID: resp.ID, Currency: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestArchiveRatePlan(t *testing.T) {
	svc, productID, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		ProductID: productID, Name: "on-demand", Currency: "USD",
	})
	require.NoError(t, err)

	archived, err := svc.Archive(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, archived.Active)

	plans, err := svc.List(context.Background(), domain.ListRequest{ProductID: productID})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.False(t, plans[0].Active)
}
