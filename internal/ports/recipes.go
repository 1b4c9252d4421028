package ports

import (
	"context"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// RecipeStore es el acceso de solo lectura a la tabla de items forjables.
// El scraper de la wiki (proceso externo) es quien la escribe.
type RecipeStore interface {
	// GetForgeItems devuelve todos los items forjables, indexados por nombre.
	// Un mapa vacío no es error: significa que el scraper aún no corrió.
	GetForgeItems(ctx context.Context) (map[string]domain.ForgeItem, error)
}
