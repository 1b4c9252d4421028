package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Enzo-Nunes/SkyForge/internal/adapters/storage"
	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestForgeItems_UpsertAndGetRoundtrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	items := map[string]domain.ForgeItem{
		"Drill Motor": {
			Name:          "Drill Motor",
			DurationHours: 30,
			Recipe:        map[string]int{"Treasurite": 10, "Golden Plate": 1},
			Requirements:  map[string]int{"Heart of the Mountain Tier": 5},
		},
		"Mithril Drill SX-R226": {
			Name:          "Mithril Drill SX-R226",
			DurationHours: 4,
			Recipe:        map[string]int{"Drill Motor": 1},
		},
	}
	require.NoError(t, s.UpsertForgeItems(ctx, items))

	got, err := s.GetForgeItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	motor := got["Drill Motor"]
	assert.InDelta(t, 30, motor.DurationHours, 0.001)
	assert.Equal(t, map[string]int{"Treasurite": 10, "Golden Plate": 1}, motor.Recipe)
	assert.Equal(t, map[string]int{"Heart of the Mountain Tier": 5}, motor.Requirements)

	drill := got["Mithril Drill SX-R226"]
	assert.Equal(t, map[string]int{"Drill Motor": 1}, drill.Recipe)
	assert.Empty(t, drill.Requirements)
}

func TestForgeItems_UpsertReplacesWholeTable(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertForgeItems(ctx, map[string]domain.ForgeItem{
		"Old Item": {Name: "Old Item", DurationHours: 1, Recipe: map[string]int{"Coins": 50}},
	}))
	require.NoError(t, s.UpsertForgeItems(ctx, map[string]domain.ForgeItem{
		"New Item": {Name: "New Item", DurationHours: 2, Recipe: map[string]int{"Mithril": 3}},
	}))

	got, err := s.GetForgeItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "New Item")
	// Las tablas hijas también se limpian: sin recetas huérfanas del item viejo
	assert.Equal(t, map[string]int{"Mithril": 3}, got["New Item"].Recipe)
}

func TestSales_WeeklyAggregateSumsAcrossBatches(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecordSales(ctx, domain.SaleBatch{
		ID:    "batch-1",
		Sales: map[string]int{"Drill Motor": 2, "Fuel Canister": 1},
	}))
	require.NoError(t, s.RecordSales(ctx, domain.SaleBatch{
		ID:    "batch-2",
		Sales: map[string]int{"Drill Motor": 3},
	}))

	weekly, err := s.GetWeeklySales(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Drill Motor": 5, "Fuel Canister": 1}, weekly)
}

func TestSales_EmptyBatchIsNoOp(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecordSales(ctx, domain.SaleBatch{ID: "empty"}))

	weekly, err := s.GetWeeklySales(ctx)
	require.NoError(t, err)
	assert.Empty(t, weekly)
}
