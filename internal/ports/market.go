package ports

import (
	"context"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// ListingsProvider obtiene las subastas del Auction House.
type ListingsProvider interface {
	// FetchActiveListings devuelve todas las subastas activas.
	// Pagina automáticamente; una página que falla se loguea y se salta,
	// el resto del pass se devuelve igualmente (partial success).
	FetchActiveListings(ctx context.Context) ([]domain.AuctionListing, error)

	// FetchEndedListings devuelve las subastas cerradas recientemente.
	// Una sola request, sin paginación.
	FetchEndedListings(ctx context.Context) ([]domain.EndedListing, error)
}

// BazaarProvider obtiene el snapshot de precios del Bazaar.
type BazaarProvider interface {
	// FetchBazaarQuotes devuelve item name → quote, con los nombres ya
	// normalizados y la entrada sintética "Coins" incluida.
	FetchBazaarQuotes(ctx context.Context) (map[string]domain.PriceQuote, error)
}
