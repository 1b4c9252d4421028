package domain_test

import (
	"testing"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByProfitPerHour_OrderAndRanks(t *testing.T) {
	records := []domain.ProfitRecord{
		{Name: "A", ProfitPerHour: 10},
		{Name: "B", ProfitPerHour: 30},
		{Name: "C", ProfitPerHour: 20},
	}

	ranked := domain.RankByProfitPerHour(records)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"B", "C", "A"},
		[]string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
	assert.InDelta(t, 30.0, ranked[0].ProfitPerHour, 0.001)
}

func TestRankByProfitPerHour_StableTies(t *testing.T) {
	// Empates conservan el orden de entrada (sort estable)
	records := []domain.ProfitRecord{
		{Name: "first", ProfitPerHour: 15},
		{Name: "second", ProfitPerHour: 15},
	}

	ranked := domain.RankByProfitPerHour(records)
	assert.Equal(t, "first", ranked[0].Name)
	assert.Equal(t, "second", ranked[1].Name)
}

func TestRankByProfitPerHour_Empty(t *testing.T) {
	assert.Empty(t, domain.RankByProfitPerHour(nil))
}

func TestForgeItem_Unlocked(t *testing.T) {
	item := domain.ForgeItem{
		Name:          "Drill Motor",
		DurationHours: 30,
		Requirements:  map[string]int{"Heart of the Mountain Tier": 5, "Tungsten Collection": 3},
	}

	assert.True(t, item.Unlocked(map[string]int{"Heart of the Mountain Tier": 5, "Tungsten Collection": 7}))
	assert.False(t, item.Unlocked(map[string]int{"Heart of the Mountain Tier": 4, "Tungsten Collection": 7}))
	// Requisito ausente en los niveles del jugador cuenta como 0
	assert.False(t, item.Unlocked(map[string]int{"Heart of the Mountain Tier": 5}))
}
