package market

// tracker.go — MarketPriceTracker.
//
// El tracker es el único dueño del correlation cache (auction id → item name).
// Dos loops independientes lo tocan: el pass de precios lo alimenta y el loop
// de atribución de ventas lo consume. Todas las mutaciones pasan por un único
// mutex, que se sostiene solo para operaciones de mapa en memoria — nunca
// mientras hay una llamada de red en curso.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/Enzo-Nunes/SkyForge/internal/ports"
)

// cacheEntry correlaciona un auction id con el item listado y el instante en
// que se observó. insertedAt viene de time.Now(), que en Go lleva lectura
// monotónica: las comparaciones de edad no dependen del wall-clock.
type cacheEntry struct {
	itemName   string
	insertedAt time.Time
}

// Tracker obtiene los snapshots de precios de ambos mercados y mantiene el
// correlation cache para la atribución de ventas.
type Tracker struct {
	listings ports.ListingsProvider
	bazaar   ports.BazaarProvider

	mu    sync.Mutex
	cache map[string]cacheEntry

	now func() time.Time // inyectable en tests
}

// NewTracker crea un Tracker sobre los providers dados.
func NewTracker(listings ports.ListingsProvider, bazaar ports.BazaarProvider) *Tracker {
	return &Tracker{
		listings: listings,
		bazaar:   bazaar,
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// RefreshAuctionHouse hace un pass completo del Auction House y devuelve el
// mejor precio BIN por item. Las subastas con puja (no BIN) nunca fijan
// precio: una puja viva no es un precio cerrado. Independientemente del
// pricing, cada listing observado se registra en el correlation cache.
//
// El mejor precio por item es monotónicamente no creciente dentro del pass:
// un listing posterior solo puede bajar o mantener el precio registrado,
// sin importar el orden en que lleguen las páginas.
func (t *Tracker) RefreshAuctionHouse(ctx context.Context) (map[string]float64, error) {
	all, err := t.listings.FetchActiveListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.RefreshAuctionHouse: %w", err)
	}

	prices := make(map[string]float64)
	observed := make(map[string]string, len(all))

	for _, listing := range all {
		observed[listing.ID] = listing.ItemName

		if !listing.BIN {
			continue
		}
		current, ok := prices[listing.ItemName]
		if !ok {
			current = domain.UnknownPrice
		}
		prices[listing.ItemName] = domain.ResolveMin(current, listing.StartingBid)
	}

	t.record(observed)

	slog.Debug("auction house prices refreshed",
		"priced_items", len(prices),
		"observed_listings", len(observed),
	)
	return prices, nil
}

// RefreshBazaar devuelve el snapshot de quotes del Bazaar. Reemplazo total:
// el mapa anterior simplemente se descarta.
func (t *Tracker) RefreshBazaar(ctx context.Context) (map[string]domain.PriceQuote, error) {
	quotes, err := t.bazaar.FetchBazaarQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.RefreshBazaar: %w", err)
	}
	return quotes, nil
}

// record registra las parejas id → item name observadas en el pass.
// Se llama con el fetch ya terminado: el lock solo cubre el mapa.
func (t *Tracker) record(observed map[string]string) {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, name := range observed {
		t.cache[id] = cacheEntry{itemName: name, insertedAt: now}
	}
}

// ResolveAndRemove saca atómicamente del cache las entradas que matchean los
// ids dados y devuelve id → item name. Un id sin entrada se salta en
// silencio: puede no haberse observado nunca, o ya haber sido resuelto o
// podado. Resolver dos veces el mismo id solo acierta la primera.
func (t *Tracker) ResolveAndRemove(ids []string) map[string]string {
	resolved := make(map[string]string)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		if entry, ok := t.cache[id]; ok {
			resolved[id] = entry.itemName
			delete(t.cache, id)
		}
	}
	return resolved
}

// Prune elimina las entradas estrictamente más viejas que maxAge y devuelve
// cuántas quitó. Una entrada con edad exactamente maxAge se conserva.
func (t *Tracker) Prune(maxAge time.Duration) int {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	pruned := 0
	for id, entry := range t.cache {
		if now.Sub(entry.insertedAt) > maxAge {
			delete(t.cache, id)
			pruned++
		}
	}
	return pruned
}

// CacheSize devuelve el número de entradas vivas del correlation cache.
func (t *Tracker) CacheSize() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cache)
}
