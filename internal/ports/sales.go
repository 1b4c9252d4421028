package ports

import (
	"context"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// SalesStore es el contador durable de ventas del Auction House.
type SalesStore interface {
	// RecordSales persiste un batch de ventas (un incremento por item).
	RecordSales(ctx context.Context, batch domain.SaleBatch) error

	// GetWeeklySales devuelve el agregado item name → ventas observadas
	// en la ventana trailing de 7 días.
	GetWeeklySales(ctx context.Context) (map[string]int, error)
}
