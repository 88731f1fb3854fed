package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/rackworks/catalog/internal/baremetal/domain"
	"github.com/rackworks/catalog/internal/baremetal/repository"
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
	switch enumType {
	case "disk_types":
		return []string{"ssd", "hdd", "nvme"}, nil
	case "hypervisor_types":
		return []string{"kvm", "vmware", "none"}, nil
	}
	return nil, refdomain.ErrUnknownEnumType
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.BareMetal{}))

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

func TestCreateBareMetal(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:           "bm.large",
		CPUCores:       32,
		MemoryGB:       256,
		DiskGB:         2000,
		DiskType:       "nvme",
		HypervisorType: "none",
		PriceHourly:    2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "nvme", resp.DiskType)
	assert.Equal(t, 32, resp.CPUCores)
}

func TestCreateRejectsUnknownDiskType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:     "bm.large",
		DiskType: "floppy",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownDiskType)
}

func TestCreateRejectsUnknownHypervisor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:           "bm.large",
		DiskType:       "ssd",
		HypervisorType: "xenon",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownHypervisor)
}

func TestCreateRejectsNegativeCapacity(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:     "bm.large",
		CPUCores: -1,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeCapacity)
}

func TestUpdateChecksEnum(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "bm.large", DiskType: "ssd",
	})
	require.NoError(t, err)

	bad := "tape"
	_, err = svc.Update(context.Background(), domain.UpdateRequest{ID: resp.ID, DiskType: &bad})
	assert.ErrorIs(t, err, domain.ErrUnknownDiskType)

	good := "hdd"
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{ID: resp.ID, DiskType: &good})
	require.NoError(t, err)
	assert.Equal(t, "hdd", updated.DiskType)
}
