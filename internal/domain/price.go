package domain

// UnknownPrice es el valor centinela para "precio/cantidad desconocido".
// Nunca debe ganar una comparación min/max salvo que ambos operandos sean desconocidos.
const UnknownPrice float64 = -1

// PriceQuote es el snapshot de precios del Bazaar para un item.
// Se reemplaza completo en cada poll — nunca hay updates parciales.
type PriceQuote struct {
	ItemName     string
	BuyPrice     float64
	SellPrice    float64
	WeeklyVolume int
}

// AuctionListing es una subasta activa vista durante un poll del Auction House.
// Efímero: solo vive durante el pass de precios que lo observó.
type AuctionListing struct {
	ItemName    string
	StartingBid float64
	BIN         bool // Buy It Now: precio fijo, comprable al instante
	ID          string
}

// EndedListing es una subasta cerrada del feed de ended listings.
// Buyer vacío significa que expiró sin venderse.
type EndedListing struct {
	AuctionID string
	Buyer     string
	BIN       bool
}

// SaleBatch es el agregado de ventas resueltas en un ciclo de atribución.
type SaleBatch struct {
	ID    string
	Sales map[string]int // item name → unidades vendidas este ciclo
}

// TotalUnits devuelve el total de unidades vendidas en el batch.
func (b SaleBatch) TotalUnits() int {
	total := 0
	for _, n := range b.Sales {
		total += n
	}
	return total
}

// ResolveMin devuelve el menor de dos precios tratando UnknownPrice como ausente.
// Es simétrica: ResolveMin(-1, x) == ResolveMin(x, -1) == x.
func ResolveMin(a, b float64) float64 {
	if a == UnknownPrice {
		return b
	}
	if b == UnknownPrice {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// ResolveMax devuelve el mayor de dos precios tratando UnknownPrice como ausente.
// Es simétrica: ResolveMax(-1, x) == ResolveMax(x, -1) == x.
func ResolveMax(a, b float64) float64 {
	if a == UnknownPrice {
		return b
	}
	if b == UnknownPrice {
		return a
	}
	if a > b {
		return a
	}
	return b
}
