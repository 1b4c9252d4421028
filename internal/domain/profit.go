package domain

import "sort"

// Mercados donde un item o material puede estar listado.
const (
	MarketBazaar       = "Bazaar"
	MarketAuctionHouse = "AH"
)

// ProfitRecord es una fila de la tabla de rentabilidad. Se recalcula completa
// cada ciclo; el rank no tiene identidad entre ciclos.
type ProfitRecord struct {
	Rank            int
	Name            string
	Cost            float64
	SellValue       float64
	Profit          float64
	DurationHours   float64
	ProfitPerHour   float64
	WeeklyVolume    int
	VolumeEstimated bool              // true si el volumen es extrapolado, no observado 7 días
	SellingMarket   string            // MarketBazaar | MarketAuctionHouse
	RecipeMarkets   map[string]string // material → mercado donde se resolvió su precio
	Recipe          map[string]int
	Requirements    map[string]int
}

// RankByProfitPerHour ordena los records por profit/hora descendente (sort estable,
// los empates conservan el orden de entrada) y reasigna los ranks desde 1.
func RankByProfitPerHour(records []ProfitRecord) []ProfitRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ProfitPerHour > records[j].ProfitPerHour
	})
	for i := range records {
		records[i].Rank = i + 1
	}
	return records
}
