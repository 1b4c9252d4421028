package forge

// calculator.go — ProfitCalculator.
//
// Cálculo puro y sin estado: cada ciclo es un batch completo sobre sus tres
// inputs (items forjables, precios de ambos mercados, agregado de ventas).
// Nada se arrastra entre ciclos salvo lo que vive en el sales store externo.

import (
	"math"
	"sort"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// weekSeconds es la ventana de "weekly volume": 7 días.
const weekSeconds = 604800

// CalcConfig es el snapshot inmutable de configuración de un ciclo de cálculo.
type CalcConfig struct {
	// Budget es el coste máximo por item; 0 desactiva el filtro.
	Budget float64
	// UnlockEnabled activa el filtro por requisitos del jugador.
	UnlockEnabled bool
	// PlayerLevels son los niveles del jugador por requisito.
	PlayerLevels map[string]int
}

// Inputs son los datos de un ciclo de cálculo.
type Inputs struct {
	Items         map[string]domain.ForgeItem
	Bazaar        map[string]domain.PriceQuote
	AuctionPrices map[string]float64 // mejor BIN actual por item
	WeeklySales   map[string]int     // ventas AH observadas en la ventana
	UptimeSeconds int
}

// Calculator convierte los inputs de un ciclo en la tabla rankeada de profits.
type Calculator struct {
	cfg CalcConfig
}

// NewCalculator crea un Calculator con el snapshot de configuración dado.
func NewCalculator(cfg CalcConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate evalúa todos los items forjables y devuelve los rentables,
// ordenados por profit/hora descendente con ranks desde 1.
//
// Un item solo entra en el output si es craftable (todos sus materiales
// tienen precio resoluble), sellable (él mismo tiene precio de venta) y su
// margen es estrictamente positivo. Margen cero o negativo excluye, no
// rankea bajo.
func (c *Calculator) Calculate(in Inputs) []domain.ProfitRecord {
	// Iterar en orden de nombre para que los empates de ranking sean
	// deterministas entre ciclos
	names := make([]string, 0, len(in.Items))
	for name := range in.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	var records []domain.ProfitRecord
	for _, name := range names {
		item := in.Items[name]

		if c.cfg.UnlockEnabled && !item.Unlocked(c.cfg.PlayerLevels) {
			continue
		}

		cost, recipeMarkets, craftable := c.resolveCost(item, in)
		sell, sellMarket, sellable := c.resolveSell(name, in)

		if !craftable || !sellable {
			// Precio irresoluble: exclusión silenciosa, no es un error
			continue
		}
		if sell <= cost {
			continue
		}
		if c.cfg.Budget > 0 && cost > c.cfg.Budget {
			continue
		}

		volume, estimated := c.resolveVolume(name, sellMarket, in)

		profit := sell - cost
		records = append(records, domain.ProfitRecord{
			Name:            name,
			Cost:            math.Ceil(cost),
			SellValue:       math.Ceil(sell),
			Profit:          math.Ceil(profit),
			DurationHours:   item.DurationHours,
			ProfitPerHour:   math.Ceil(profit / item.DurationHours),
			WeeklyVolume:    volume,
			VolumeEstimated: estimated,
			SellingMarket:   sellMarket,
			RecipeMarkets:   recipeMarkets,
			Recipe:          item.Recipe,
			Requirements:    item.Requirements,
		})
	}

	return domain.RankByProfitPerHour(records)
}

// resolveCost suma quantity × precio unitario resuelto por material. El
// precio unitario prefiere siempre el buy price del Bazaar si el material
// está listado ahí; si no, el mejor BIN del AH. Nunca se mezclan mercados
// para un mismo material.
func (c *Calculator) resolveCost(item domain.ForgeItem, in Inputs) (cost float64, markets map[string]string, craftable bool) {
	markets = make(map[string]string, len(item.Recipe))
	craftable = true

	for material, quantity := range item.Recipe {
		var price float64
		if quote, ok := in.Bazaar[material]; ok {
			price = quote.BuyPrice
			markets[material] = domain.MarketBazaar
		} else {
			price = domain.UnknownPrice
			if p, ok := in.AuctionPrices[material]; ok {
				price = p
			}
			markets[material] = domain.MarketAuctionHouse
		}

		if price < 0 {
			craftable = false
		}
		cost += float64(quantity) * price
	}
	return cost, markets, craftable
}

// resolveSell devuelve el valor de venta del item: sell price del Bazaar si
// está listado ahí, si no el mejor BIN actual del AH.
func (c *Calculator) resolveSell(name string, in Inputs) (sell float64, market string, sellable bool) {
	if quote, ok := in.Bazaar[name]; ok {
		return quote.SellPrice, domain.MarketBazaar, quote.SellPrice >= 0
	}

	price := domain.UnknownPrice
	if p, ok := in.AuctionPrices[name]; ok {
		price = p
	}
	return price, domain.MarketAuctionHouse, price >= 0
}

// resolveVolume devuelve el weekly volume del item. En el Bazaar el volumen
// reportado es exacto. Solo-AH usa el agregado de ventas observadas: con
// menos de 7 días de uptime se extrapola a la semana completa (redondeando
// hacia arriba) y se marca como estimado; con uptime ≥ 7 días el conteo crudo
// ya es una semana real.
func (c *Calculator) resolveVolume(name, sellMarket string, in Inputs) (volume int, estimated bool) {
	if sellMarket == domain.MarketBazaar {
		return in.Bazaar[name].WeeklyVolume, false
	}

	observed := in.WeeklySales[name]
	if observed > 0 && in.UptimeSeconds > 0 && in.UptimeSeconds < weekSeconds {
		extrapolated := math.Ceil(float64(observed) * weekSeconds / float64(in.UptimeSeconds))
		return int(extrapolated), true
	}
	return observed, false
}
