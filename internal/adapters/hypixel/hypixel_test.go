package hypixel_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Enzo-Nunes/SkyForge/internal/adapters/hypixel"
	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *hypixel.Client {
	return hypixel.NewClient(srv.URL, "")
}

func TestFetchActiveListings_Paginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auctions", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"success": true, "page": %d, "totalPages": 2, "totalAuctions": 3,
			"auctions": [
				{"uuid": "id-%d-a", "item_name": "Drill Motor", "starting_bid": %d, "bin": true},
				{"uuid": "id-%d-b", "item_name": "Mithril", "starting_bid": 50, "bin": false}
			]
		}`, page, page, 1000*(page+1), page)
	}))
	defer srv.Close()

	listings, err := newTestClient(srv).FetchActiveListings(context.Background())
	require.NoError(t, err)
	// 2 páginas × 2 listings (la request inicial solo descubre el page count)
	require.Len(t, listings, 4)

	byID := make(map[string]domain.AuctionListing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	assert.Equal(t, "Drill Motor", byID["id-0-a"].ItemName)
	assert.True(t, byID["id-0-a"].BIN)
	assert.False(t, byID["id-0-b"].BIN)
	assert.InDelta(t, 2000, byID["id-1-a"].StartingBid, 0.001)
}

func TestFetchActiveListings_PartialSuccessOnPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 1 {
			// 400 no se reintenta: la página cae y el pass continúa
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"success": true, "page": %d, "totalPages": 3, "totalAuctions": 3,
			"auctions": [{"uuid": "id-%d", "item_name": "Mithril", "starting_bid": 10, "bin": true}]
		}`, page, page)
	}))
	defer srv.Close()

	listings, err := newTestClient(srv).FetchActiveListings(context.Background())
	require.NoError(t, err, "una página caída no debe abortar el pass")
	assert.Len(t, listings, 2)
}

func TestFetchActiveListings_DiscoveryFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchActiveListings(context.Background())
	assert.Error(t, err)
}

func TestFetchEndedListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auctions_ended", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"success": true,
			"auctions": [
				{"auction_id": "a1", "buyer": "player1", "bin": true},
				{"auction_id": "a2", "buyer": null, "bin": true}
			]
		}`)
	}))
	defer srv.Close()

	ended, err := newTestClient(srv).FetchEndedListings(context.Background())
	require.NoError(t, err)
	require.Len(t, ended, 2)
	assert.Equal(t, "player1", ended[0].Buyer)
	assert.Empty(t, ended[1].Buyer, "buyer null debe quedar vacío")
}

func TestFetchBazaarQuotes_NormalizationAndCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bazaar", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"success": true,
			"products": {
				"ENCHANTED_IRON": {"quick_status": {"buyPrice": 52.3, "sellPrice": 48.1, "sellMovingWeek": 90000}},
				"DRILL_ENGINE":   {"quick_status": {"buyPrice": 1000, "sellPrice": 900, "sellMovingWeek": 40}},
				"PERFECT_JASPER_GEM": {"quick_status": {"buyPrice": 5, "sellPrice": 4, "sellMovingWeek": 10}},
				"INK_SACK:3":     {"quick_status": {"buyPrice": 2, "sellPrice": 1, "sellMovingWeek": 7}}
			}
		}`)
	}))
	defer srv.Close()

	quotes, err := newTestClient(srv).FetchBazaarQuotes(context.Background())
	require.NoError(t, err)

	// Regla genérica: split por "_", capitalizar, unir con espacios
	iron, ok := quotes["Enchanted Iron"]
	require.True(t, ok)
	assert.InDelta(t, 52.3, iron.BuyPrice, 0.001)
	assert.InDelta(t, 48.1, iron.SellPrice, 0.001)
	assert.Equal(t, 90000, iron.WeeklyVolume)

	// Override: DRILL_ENGINE no sigue la regla genérica
	assert.Contains(t, quotes, "Drill Motor")

	// Sufijo GEM → GEMSTONE
	assert.Contains(t, quotes, "Perfect Jasper Gemstone")

	// Qualifier tras ":" descartado
	assert.Contains(t, quotes, "Ink Sack")

	// Entrada sintética siempre presente
	coins, ok := quotes["Coins"]
	require.True(t, ok)
	assert.InDelta(t, 1, coins.BuyPrice, 0.001)
	assert.InDelta(t, 1, coins.SellPrice, 0.001)
}

func TestFetchBazaarQuotes_SuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success": false, "products": {}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchBazaarQuotes(context.Background())
	assert.Error(t, err)
}
