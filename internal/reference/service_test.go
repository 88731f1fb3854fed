package reference

import (
	"context"
	"testing"

	"github.com/rackworks/catalog/internal/config"
	"github.com/rackworks/catalog/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRepo struct {
	domain.Repository
	enumCalls int
}

func (r *countingRepo) EnumValues(ctx context.Context, enumName string) ([]string, error) {
	r.enumCalls++
	return []string{"ssd", "hdd", "nvme"}, nil
}

func newTestHolder(t *testing.T) *config.CatalogConfigHolder {
	t.Helper()
	holder, err := config.NewCatalogConfigHolder()
	require.NoError(t, err)
	return holder
}

func TestEnumValuesCachesResults(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(ServiceParams{
		Log:    zap.NewNop(),
		Repo:   repo,
		Holder: newTestHolder(t),
	})

	first, err := svc.EnumValues(context.Background(), "disk_types")
	require.NoError(t, err)
	assert.Equal(t, []string{"ssd", "hdd", "nvme"}, first)

	_, err = svc.EnumValues(context.Background(), "disk_types")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.enumCalls)
}

func TestEnumValuesUnknownType(t *testing.T) {
	svc := NewService(ServiceParams{
		Log:    zap.NewNop(),
		Repo:   &countingRepo{},
		Holder: newTestHolder(t),
	})

	_, err := svc.EnumValues(context.Background(), "volume_kinds")
	assert.ErrorIs(t, err, domain.ErrUnknownEnumType)
}
