package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/adapters/memory"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

func newAsset(t *testing.T, name, number, sector string) *domain.Asset {
	t.Helper()
	asset, err := domain.NewAsset(name, "circular knitting machine", number, "MX-200", "SN-"+number, sector)
	require.NoError(t, err)
	return asset
}

func TestCreateAndGetAsset(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())

	created, err := svc.CreateAsset(context.Background(), newAsset(t, "Knitter 1", "EQ-001", "knitting"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusActive, created.Status)

	fetched, err := svc.GetAsset(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EQ-001", fetched.Number)
}

func TestCreateAsset_Invalid(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())

	_, err := svc.CreateAsset(context.Background(), &domain.Asset{Number: "EQ-002", Status: domain.StatusActive})
	require.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestChangeStatus_Lifecycle(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())
	ctx := context.Background()

	created, err := svc.CreateAsset(ctx, newAsset(t, "Loom 3", "EQ-010", "weaving"))
	require.NoError(t, err)

	asset, err := svc.ChangeStatus(ctx, created.ID, domain.StatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMaintenance, asset.Status)

	asset, err = svc.ChangeStatus(ctx, created.ID, domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, asset.Status)

	asset, err = svc.ChangeStatus(ctx, created.ID, domain.StatusRetired)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRetired, asset.Status)

	// A retired machine never goes back into rotation.
	_, err = svc.ChangeStatus(ctx, created.ID, domain.StatusActive)
	require.ErrorIs(t, err, domain.ErrRetired)
}

func TestListAssets_Filtered(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())
	ctx := context.Background()

	_, err := svc.CreateAsset(ctx, newAsset(t, "Knitter 1", "EQ-001", "knitting"))
	require.NoError(t, err)
	_, err = svc.CreateAsset(ctx, newAsset(t, "Loom 1", "EQ-002", "weaving"))
	require.NoError(t, err)

	all, err := svc.ListAssets(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	knitting, err := svc.ListAssets(ctx, ports.ListFilter{Sector: "knitting"})
	require.NoError(t, err)
	require.Len(t, knitting, 1)
	assert.Equal(t, "EQ-001", knitting[0].Number)
}

func TestUpdateAsset_KeepsStatus(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())
	ctx := context.Background()

	created, err := svc.CreateAsset(ctx, newAsset(t, "Dyer 1", "EQ-020", "dyeing"))
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, created.ID, domain.StatusMaintenance)
	require.NoError(t, err)

	updated := &domain.Asset{Name: "Dyer 1B", Number: "EQ-020", Sector: "dyeing"}
	saved, err := svc.UpdateAsset(ctx, created.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, "Dyer 1B", saved.Name)
	assert.Equal(t, domain.StatusMaintenance, saved.Status)
}

func TestDeleteAsset_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())
	require.ErrorIs(t, svc.DeleteAsset(context.Background(), 42), ports.ErrNotFound)
}

func TestSectorRegistry(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewSectorRepository())
	ctx := context.Background()

	created, err := svc.CreateSector(ctx, "  knitting ", "circular machines")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "knitting", created.Name)
	assert.True(t, created.Active)

	_, err = svc.CreateSector(ctx, "   ", "")
	require.ErrorIs(t, err, domain.ErrEmptySectorName)

	updated, err := svc.UpdateSector(ctx, created.ID, "knitting", "circular machines", false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	list, err := svc.ListSectors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "knitting", list[0].Name)

	require.NoError(t, svc.DeleteSector(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteSector(ctx, created.ID), ports.ErrNotFound)
}
