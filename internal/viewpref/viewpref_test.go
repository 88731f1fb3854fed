package viewpref

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newMemoryService() Service {
	return NewService(ServiceParams{Log: zap.NewNop(), KV: NewMemoryKV()})
}

func TestRoundTripPreferences(t *testing.T) {
	svc := newMemoryService()
	ctx := context.Background()

	require.NoError(t, svc.SetColumnOrder(ctx, "products", []string{"name", "region", "scope"}))
	require.NoError(t, svc.SetHiddenColumns(ctx, "products", []string{"scope"}))

	prefs, err := svc.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "region", "scope"}, prefs.ColumnOrder)
	assert.Equal(t, []string{"scope"}, prefs.HiddenColumns)
}

func TestAbsentPreferenceIsEmpty(t *testing.T) {
	svc := newMemoryService()

	prefs, err := svc.Get(context.Background(), "rate_plans")
	require.NoError(t, err)
	assert.Empty(t, prefs.ColumnOrder)
	assert.Empty(t, prefs.HiddenColumns)
}

func TestMalformedPreferenceDecodesToEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), "products-column-order", "{not json"))
	svc := NewService(ServiceParams{Log: zap.NewNop(), KV: kv})

	prefs, err := svc.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.Empty(t, prefs.ColumnOrder)
}

func TestGormKVRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&prefRow{}))

	kv := NewGormKV(db)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "bundles-hidden-columns", `["discount_pct"]`))
	require.NoError(t, kv.Set(ctx, "bundles-hidden-columns", `["quantity"]`))

	value, found, err := kv.Get(ctx, "bundles-hidden-columns")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["quantity"]`, value)
}
