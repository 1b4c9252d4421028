package hypixel

// auctions.go — Auction House adapter.
//
// FetchActiveListings descubre el total de páginas con una request inicial y
// después dispara un goroutine por página. El rate limiter (token bucket) en
// doWithRetry controla el ritmo automáticamente — los goroutines se
// "autolimitan" sin necesidad de semáforo explícito. Una página que falla se
// loguea y se salta: el pass devuelve lo que sí se pudo recolectar.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

const (
	auctionsPath = "/auctions"
	endedPath    = "/auctions_ended"
)

// FetchActiveListings devuelve todas las subastas activas del Auction House.
func (c *Client) FetchActiveListings(ctx context.Context) ([]domain.AuctionListing, error) {
	var first auctionsResponse
	url := fmt.Sprintf("%s%s?page=0", c.baseURL, auctionsPath)
	if err := c.get(ctx, c.auctionsLimiter, url, &first); err != nil {
		return nil, fmt.Errorf("hypixel.FetchActiveListings: discover pages: %w", err)
	}

	pages := first.TotalPages
	slog.Info("auction house pass starting",
		"pages", pages,
		"total_auctions", first.TotalAuctions,
	)

	type pageResult struct {
		listings []domain.AuctionListing
		err      error
		page     int
	}

	resultCh := make(chan pageResult, pages)
	var wg sync.WaitGroup

	for i := 0; i < pages; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			listings, err := c.fetchAuctionPage(ctx, page)
			resultCh <- pageResult{listings: listings, err: err, page: page}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var all []domain.AuctionListing
	skipped := 0
	for r := range resultCh {
		if r.err != nil {
			// Partial success: una página caída no aborta el pass
			slog.Warn("skipping auction house page", "page", r.page, "err", r.err)
			skipped++
			continue
		}
		all = append(all, r.listings...)
	}

	slog.Info("auction house pass complete",
		"listings", len(all),
		"pages_skipped", skipped,
	)
	return all, nil
}

// fetchAuctionPage hace el GET de una página de /auctions.
func (c *Client) fetchAuctionPage(ctx context.Context, page int) ([]domain.AuctionListing, error) {
	var resp auctionsResponse
	url := fmt.Sprintf("%s%s?page=%d", c.baseURL, auctionsPath, page)
	if err := c.get(ctx, c.auctionsLimiter, url, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("page %d: success=false", page)
	}
	return mapAuctions(resp.Auctions), nil
}

// FetchEndedListings devuelve las subastas cerradas en los últimos minutos.
// El feed no está paginado: es una sola request.
func (c *Client) FetchEndedListings(ctx context.Context) ([]domain.EndedListing, error) {
	var resp endedResponse
	url := c.baseURL + endedPath
	if err := c.get(ctx, c.generalLimiter, url, &resp); err != nil {
		return nil, fmt.Errorf("hypixel.FetchEndedListings: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("hypixel.FetchEndedListings: success=false")
	}

	listings := mapEnded(resp.Auctions)
	slog.Debug("ended listings fetched", "count", len(listings))
	return listings, nil
}
