package hypixel

import (
	"encoding/json"
	"io"
)

// DTOs raw de la API de Hypixel. Solo se usan dentro de este paquete.
// La conversión a domain entities y la normalización de nombres está en mapping.go.

// auctionsResponse es la respuesta paginada de GET /auctions.
type auctionsResponse struct {
	Success       bool         `json:"success"`
	Page          int          `json:"page"`
	TotalPages    int          `json:"totalPages"`
	TotalAuctions int          `json:"totalAuctions"`
	Auctions      []rawAuction `json:"auctions"`
}

// rawAuction es una subasta activa.
type rawAuction struct {
	UUID        string  `json:"uuid"`
	ItemName    string  `json:"item_name"`
	StartingBid float64 `json:"starting_bid"`
	BIN         bool    `json:"bin"`
}

// endedResponse es la respuesta de GET /auctions_ended.
type endedResponse struct {
	Success  bool       `json:"success"`
	Auctions []rawEnded `json:"auctions"`
}

// rawEnded es una subasta cerrada. Buyer viene null si expiró sin venderse.
type rawEnded struct {
	AuctionID string `json:"auction_id"`
	Buyer     string `json:"buyer"`
	BIN       bool   `json:"bin"`
}

// bazaarResponse es la respuesta de GET /bazaar.
type bazaarResponse struct {
	Success  bool                  `json:"success"`
	Products map[string]rawProduct `json:"products"`
}

// rawProduct contiene el quick status de un producto del Bazaar.
type rawProduct struct {
	QuickStatus rawQuickStatus `json:"quick_status"`
}

// rawQuickStatus son los agregados de mercado que nos interesan.
type rawQuickStatus struct {
	BuyPrice       float64 `json:"buyPrice"`
	SellPrice      float64 `json:"sellPrice"`
	SellMovingWeek int     `json:"sellMovingWeek"`
}

// decodeJSON decodifica el body completo en out.
func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
