package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/rackworks/catalog/internal/dedicatedhost/domain"
	"github.com/rackworks/catalog/internal/dedicatedhost/repository"
	refdomain "github.com/rackworks/catalog/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeReference struct{}

func (fakeReference) Scopes(ctx context.Context) ([]refdomain.Scope, error)             { return nil, nil }
func (fakeReference) Services(ctx context.Context) ([]refdomain.Service, error)         { return nil, nil }
func (fakeReference) ServiceTypes(ctx context.Context) ([]refdomain.ServiceType, error) { return nil, nil }
func (fakeReference) Regions(ctx context.Context) ([]refdomain.Region, error)           { return nil, nil }

func (fakeReference) EnumValues(ctx context.Context, enumType string) ([]string, error) {
	if enumType == "hypervisor_types" {
		return []string{"kvm", "vmware"}, nil
	}
	return nil, refdomain.ErrUnknownEnumType
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DedicatedHost{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Reference: fakeReference{},
	})
}

func TestCreateDedicatedHost(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:           "host-a1",
		HostType:       "a1.metal",
		Sockets:        2,
		Cores:          64,
		MemoryGB:       512,
		HypervisorType: "kvm",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1.metal", resp.HostType)
	assert.Equal(t, 64, resp.Cores)
}

func TestCreateRequiresHostType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "host-a1"})
	assert.ErrorIs(t, err, domain.ErrInvalidHostType)
}

func TestCreateRejectsUnknownHypervisor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "host-a1", HostType: "a1.metal", HypervisorType: "bochs",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownHypervisor)
}

func TestCreateRejectsNegativeCapacity(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "host-a1", HostType: "a1.metal", Sockets: -1,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeCapacity)
}
