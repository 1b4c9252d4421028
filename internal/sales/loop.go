package sales

// loop.go — SaleAttributionLoop.
//
// Corre en su propio ticker, independiente de la cadencia de precios. Cada
// ciclo es autocontenido y best-effort: cualquier fallo se loguea y el ciclo
// se abandona sin tumbar el loop — el siguiente tick arranca limpio con un
// agregado nuevo (un batch no enviado no se reintenta).

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/Enzo-Nunes/SkyForge/internal/market"
	"github.com/Enzo-Nunes/SkyForge/internal/ports"
)

// Config controla el loop de atribución de ventas.
type Config struct {
	PollInterval time.Duration
	// CacheTTL es la edad máxima de las entradas del correlation cache:
	// varios múltiplos del refresh interval de precios, para acotar el cache
	// a entradas todavía relevantes para ventas pendientes de resolver.
	CacheTTL time.Duration
}

// Loop resuelve las subastas cerradas contra el correlation cache del tracker
// y acumula las ventas en el store durable.
type Loop struct {
	cfg      Config
	listings ports.ListingsProvider
	tracker  *market.Tracker
	store    ports.SalesStore
}

// NewLoop crea el loop con todas las dependencias inyectadas.
func NewLoop(cfg Config, listings ports.ListingsProvider, tracker *market.Tracker, store ports.SalesStore) *Loop {
	return &Loop{cfg: cfg, listings: listings, tracker: tracker, store: store}
}

// Run ejecuta el loop hasta que el contexto se cancele.
func (l *Loop) Run(ctx context.Context) {
	slog.Info("sale attribution loop starting",
		"interval", l.cfg.PollInterval,
		"cache_ttl", l.cfg.CacheTTL,
	)

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sale attribution loop stopped")
			return
		case <-ticker.C:
			l.RunCycle(ctx)
		}
	}
}

// RunCycle ejecuta un ciclo de atribución: fetch → filter → resolve →
// aggregate → prune → push. Nunca devuelve error: los fallos se loguean y el
// ciclo se abandona.
func (l *Loop) RunCycle(ctx context.Context) {
	ended, err := l.listings.FetchEndedListings(ctx)
	if err != nil {
		slog.Warn("sale attribution cycle abandoned", "err", err)
		return
	}

	// Solo cuentan las ventas reales: un cierre no-BIN mezcla "vendido" con
	// "expirado sin vender", y sin buyer el listing expiró sin comprador.
	soldIDs := make([]string, 0, len(ended))
	for _, e := range ended {
		if e.Buyer != "" && e.BIN {
			soldIDs = append(soldIDs, e.AuctionID)
		}
	}

	resolved := l.tracker.ResolveAndRemove(soldIDs)

	aggregate := make(map[string]int)
	for _, name := range resolved {
		aggregate[name]++
	}

	if pruned := l.tracker.Prune(l.cfg.CacheTTL); pruned > 0 {
		slog.Info("pruned stale correlation cache entries", "count", pruned)
	}

	if len(aggregate) == 0 {
		slog.Debug("no sales resolved this cycle", "ended", len(ended), "sold", len(soldIDs))
		return
	}

	batch := domain.SaleBatch{ID: uuid.New().String(), Sales: aggregate}
	if err := l.store.RecordSales(ctx, batch); err != nil {
		// Best-effort: el agregado de este ciclo se pierde, el siguiente
		// ciclo arranca uno nuevo
		slog.Warn("failed to record sale batch, dropping it", "batch", batch.ID, "err", err)
		return
	}

	slog.Info("auction house sales recorded",
		"batch", batch.ID,
		"units", batch.TotalUnits(),
		"items", len(aggregate),
	)
}
