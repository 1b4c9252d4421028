package hypixel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

const bazaarPath = "/bazaar"

// FetchBazaarQuotes devuelve el snapshot completo del Bazaar, con los product
// IDs ya traducidos a nombres in-game y la entrada sintética "Coins".
func (c *Client) FetchBazaarQuotes(ctx context.Context) (map[string]domain.PriceQuote, error) {
	var resp bazaarResponse
	url := c.baseURL + bazaarPath
	if err := c.get(ctx, c.generalLimiter, url, &resp); err != nil {
		return nil, fmt.Errorf("hypixel.FetchBazaarQuotes: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("hypixel.FetchBazaarQuotes: success=false")
	}

	quotes := mapBazaar(resp)
	slog.Debug("bazaar snapshot fetched", "products", len(quotes))
	return quotes, nil
}
