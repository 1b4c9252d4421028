package hypixel

import (
	"strings"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// nameOverrides son los nombres del Bazaar que no siguen la regla genérica.
// La API usa IDs internos de Minecraft; la wiki (y por tanto el recipe store)
// usa los nombres in-game.
var nameOverrides = map[string]string{
	"DRILL_ENGINE":         "Drill Motor",
	"FUEL_TANK":            "Fuel Canister",
	"HAY_BLOCK":            "Hay Bale",
	"ENCHANTED_HAY_BLOCK":  "Enchanted Hay Bale",
	"ENCHANTED_COAL_BLOCK": "Enchanted Block Of Coal",
	"GOBLIN_EGG_BLUE":      "Blue Goblin Egg",
	"GOBLIN_EGG_GREEN":     "Green Goblin Egg",
	"GOBLIN_EGG_RED":       "Red Goblin Egg",
	"GOBLIN_EGG_YELLOW":    "Yellow Goblin Egg",
	"MITHRIL_ORE":          "Mithril",
}

// convertBazaarName traduce un product ID del Bazaar al nombre in-game.
// Orden: tabla de overrides, reescritura del sufijo GEM → GEMSTONE, y la regla
// genérica: descartar el qualifier tras ":", partir por "_", capitalizar cada
// segmento y unir con espacios.
func convertBazaarName(bazaarName string) string {
	if name, ok := nameOverrides[bazaarName]; ok {
		return name
	}

	converted := bazaarName
	if strings.HasSuffix(converted, "GEM") {
		converted = strings.ReplaceAll(converted, "GEM", "GEMSTONE")
	}

	converted, _, _ = strings.Cut(converted, ":")

	parts := strings.Split(converted, "_")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

// capitalize pone la primera letra en mayúscula y el resto en minúscula.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// mapAuctions convierte los DTOs de /auctions a domain.AuctionListing.
func mapAuctions(raw []rawAuction) []domain.AuctionListing {
	listings := make([]domain.AuctionListing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, domain.AuctionListing{
			ItemName:    r.ItemName,
			StartingBid: r.StartingBid,
			BIN:         r.BIN,
			ID:          r.UUID,
		})
	}
	return listings
}

// mapEnded convierte los DTOs de /auctions_ended a domain.EndedListing.
func mapEnded(raw []rawEnded) []domain.EndedListing {
	listings := make([]domain.EndedListing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, domain.EndedListing{
			AuctionID: r.AuctionID,
			Buyer:     r.Buyer,
			BIN:       r.BIN,
		})
	}
	return listings
}

// mapBazaar convierte la respuesta del Bazaar a quotes con nombres normalizados,
// añadiendo la entrada sintética "Coins" (buy = sell = 1).
func mapBazaar(resp bazaarResponse) map[string]domain.PriceQuote {
	quotes := make(map[string]domain.PriceQuote, len(resp.Products)+1)
	quotes["Coins"] = domain.PriceQuote{ItemName: "Coins", BuyPrice: 1, SellPrice: 1}

	for product, raw := range resp.Products {
		name := convertBazaarName(product)
		quotes[name] = domain.PriceQuote{
			ItemName:     name,
			BuyPrice:     raw.QuickStatus.BuyPrice,
			SellPrice:    raw.QuickStatus.SellPrice,
			WeeklyVolume: raw.QuickStatus.SellMovingWeek,
		}
	}
	return quotes
}
