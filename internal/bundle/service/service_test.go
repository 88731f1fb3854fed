package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/rackworks/catalog/internal/bundle/domain"
	"github.com/rackworks/catalog/internal/bundle/repository"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	prodrepository "github.com/rackworks/catalog/internal/product/repository"
	rpdomain "github.com/rackworks/catalog/internal/rateplan/domain"
	rprepository "github.com/rackworks/catalog/internal/rateplan/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	node    *snowflake.Node
	product string
	plan    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&proddomain.Product{}, &rpdomain.RatePlan{}, &domain.Bundle{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		ProductRepo:  prodrepository.Provide(),
		RatePlanRepo: rprepository.Provide(),
	})

	now := time.Now().UTC()
	productID := node.Generate().Int64()
	require.NoError(t, db.Create(&proddomain.Product{
		ID: productID, ProductTemplateID: node.Generate().Int64(), Name: "vm.small",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}).Error)
	planID := node.Generate().Int64()
	require.NoError(t, db.Create(&rpdomain.RatePlan{
		ID: planID, ProductID: productID, Name: "on-demand", Currency: "USD",
		Active: true, CreatedAt: now, UpdatedAt: now,
	}).Error)

	return &fixture{
		svc:     svc,
		node:    node,
		product: snowflake.ID(productID).String(),
		plan:    snowflake.ID(planID).String(),
	}
}

func TestCreateBundle(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Name:        "starter-pack",
		ProductID:   f.product,
		RatePlanID:  f.plan,
		Quantity:    3,
		DiscountPct: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, 10.0, resp.DiscountPct)
}

func TestCreateRejectsZeroQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Name: "starter-pack", ProductID: f.product, RatePlanID: f.plan, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateRejectsDiscountOutOfRange(t *testing.T) {
	f := newFixture(t)

	for _, pct := range []float64{-5, 101} {
		_, err := f.svc.Create(context.Background(), domain.CreateRequest{
			Name: "starter-pack", ProductID: f.product, RatePlanID: f.plan,
			Quantity: 1, DiscountPct: pct,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "pct %v", pct)
	}
}

func TestCreateRejectsForeignRatePlan(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Name: "starter-pack", ProductID: f.product,
		RatePlanID: f.node.Generate().String(), Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRatePlan)
}
