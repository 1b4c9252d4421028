package ports

import (
	"context"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// Notifier presenta la tabla de rentabilidad de cada ciclo al usuario.
type Notifier interface {
	// Notify recibe los records ya rankeados, junto con el uptime del
	// proceso (la base de la extrapolación de volumen).
	Notify(ctx context.Context, records []domain.ProfitRecord, uptimeSeconds int) error
}
