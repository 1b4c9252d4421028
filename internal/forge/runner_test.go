package forge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/Enzo-Nunes/SkyForge/internal/forge"
	"github.com/Enzo-Nunes/SkyForge/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockRecipeStore struct {
	items map[string]domain.ForgeItem
	err   error
	calls int
}

func (m *mockRecipeStore) GetForgeItems(_ context.Context) (map[string]domain.ForgeItem, error) {
	m.calls++
	return m.items, m.err
}

type mockSalesStore struct {
	weekly map[string]int
	err    error
}

func (m *mockSalesStore) RecordSales(_ context.Context, _ domain.SaleBatch) error { return nil }

func (m *mockSalesStore) GetWeeklySales(_ context.Context) (map[string]int, error) {
	return m.weekly, m.err
}

type mockNotifier struct {
	records []domain.ProfitRecord
	uptime  int
	calls   int
}

func (m *mockNotifier) Notify(_ context.Context, records []domain.ProfitRecord, uptimeSeconds int) error {
	m.records = records
	m.uptime = uptimeSeconds
	m.calls++
	return nil
}

type mockListings struct {
	active []domain.AuctionListing
}

func (m *mockListings) FetchActiveListings(_ context.Context) ([]domain.AuctionListing, error) {
	return m.active, nil
}

func (m *mockListings) FetchEndedListings(_ context.Context) ([]domain.EndedListing, error) {
	return nil, nil
}

type mockBazaar struct {
	quotes map[string]domain.PriceQuote
}

func (m *mockBazaar) FetchBazaarQuotes(_ context.Context) (map[string]domain.PriceQuote, error) {
	return m.quotes, nil
}

// --- helpers ---

func onceConfig() forge.Config {
	return forge.Config{
		RefreshInterval: time.Minute,
		StartupRetries:  2,
		StartupDelay:    time.Millisecond,
		Once:            true,
	}
}

func staticCalcConfig() forge.CalcConfig { return forge.CalcConfig{} }

// --- tests ---

func TestRunner_OnceCycleNotifies(t *testing.T) {
	recipes := &mockRecipeStore{items: map[string]domain.ForgeItem{
		"Widget": {Name: "Widget", DurationHours: 1, Recipe: map[string]int{"Material X": 2}},
	}}
	salesStore := &mockSalesStore{weekly: map[string]int{}}
	tracker := market.NewTracker(&mockListings{}, &mockBazaar{quotes: map[string]domain.PriceQuote{
		"Material X": {ItemName: "Material X", BuyPrice: 10, SellPrice: 9},
		"Widget":     {ItemName: "Widget", BuyPrice: 40, SellPrice: 35, WeeklyVolume: 120},
	}})
	notifier := &mockNotifier{}

	r := forge.NewRunner(onceConfig(), staticCalcConfig, recipes, salesStore, tracker, notifier)
	require.NoError(t, r.Run(context.Background()))

	require.Equal(t, 1, notifier.calls)
	require.Len(t, notifier.records, 1)
	assert.Equal(t, "Widget", notifier.records[0].Name)
	assert.InDelta(t, 15, notifier.records[0].Profit, 0.001)
}

func TestRunner_StartupRetriesExhausted(t *testing.T) {
	// Sin recetas no hay modo degradado: agotar los retries es fatal
	recipes := &mockRecipeStore{err: errors.New("db unreachable")}
	tracker := market.NewTracker(&mockListings{}, &mockBazaar{})

	r := forge.NewRunner(onceConfig(), staticCalcConfig, recipes, &mockSalesStore{}, tracker, &mockNotifier{})
	err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, recipes.calls)
}

func TestRunner_EmptyRecipeStoreRetriesThenFails(t *testing.T) {
	recipes := &mockRecipeStore{items: map[string]domain.ForgeItem{}}
	tracker := market.NewTracker(&mockListings{}, &mockBazaar{})

	r := forge.NewRunner(onceConfig(), staticCalcConfig, recipes, &mockSalesStore{}, tracker, &mockNotifier{})
	assert.Error(t, r.Run(context.Background()))
}

func TestRunner_SalesStoreErrorIsNotFatal(t *testing.T) {
	// El agregado de ventas es opcional: el ciclo sigue con volumen 0
	recipes := &mockRecipeStore{items: map[string]domain.ForgeItem{
		"Widget": {Name: "Widget", DurationHours: 1, Recipe: map[string]int{"Material X": 1}},
	}}
	salesStore := &mockSalesStore{err: errors.New("db locked")}
	tracker := market.NewTracker(
		&mockListings{active: []domain.AuctionListing{
			{ID: "a1", ItemName: "Widget", StartingBid: 100, BIN: true},
		}},
		&mockBazaar{quotes: map[string]domain.PriceQuote{
			"Material X": {ItemName: "Material X", BuyPrice: 10, SellPrice: 9},
		}},
	)
	notifier := &mockNotifier{}

	r := forge.NewRunner(onceConfig(), staticCalcConfig, recipes, salesStore, tracker, notifier)
	require.NoError(t, r.Run(context.Background()))

	require.Len(t, notifier.records, 1)
	assert.Equal(t, 0, notifier.records[0].WeeklyVolume)
}
