package forge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/market"
	"github.com/Enzo-Nunes/SkyForge/internal/ports"
)

// Config controla el ciclo de precios/profits.
type Config struct {
	RefreshInterval time.Duration
	// StartupRetries/StartupDelay acotan la espera inicial por el recipe
	// store. Sin recetas no hay modo degradado útil: agotar los retries es
	// un error fatal de arranque.
	StartupRetries int
	StartupDelay   time.Duration
	Once           bool // ejecutar un ciclo y salir
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 2 * time.Minute,
		StartupRetries:  10,
		StartupDelay:    3 * time.Second,
	}
}

// Runner es el orquestador del ciclo de precios: carga recetas, refresca
// ambos mercados a través del tracker, calcula los profits y los entrega al
// notifier. Cada ciclo es stateless dados sus inputs.
type Runner struct {
	cfg      Config
	calcCfg  func() CalcConfig // snapshot inmutable por ciclo, recargable entre ciclos
	recipes  ports.RecipeStore
	sales    ports.SalesStore
	tracker  *market.Tracker
	notifier ports.Notifier

	startedAt time.Time
	now       func() time.Time
}

// NewRunner crea un Runner con todas las dependencias inyectadas.
// calcCfg se invoca al principio de cada ciclo; devolver siempre el mismo
// valor es válido, pero permite recargar umbrales sin tocar el estado del
// proceso.
func NewRunner(
	cfg Config,
	calcCfg func() CalcConfig,
	recipes ports.RecipeStore,
	sales ports.SalesStore,
	tracker *market.Tracker,
	notifier ports.Notifier,
) *Runner {
	return &Runner{
		cfg:      cfg,
		calcCfg:  calcCfg,
		recipes:  recipes,
		sales:    sales,
		tracker:  tracker,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run espera a que el recipe store tenga datos y ejecuta el loop de ciclos
// hasta que el contexto se cancele. Si cfg.Once está activo, solo un ciclo.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.waitForRecipes(ctx); err != nil {
		return fmt.Errorf("forge.Run: %w", err)
	}

	r.startedAt = r.now()
	slog.Info("forge runner starting",
		"interval", r.cfg.RefreshInterval,
		"once", r.cfg.Once,
	)

	if err := r.runCycle(ctx); err != nil {
		slog.Error("forge cycle failed", "err", err)
		if r.cfg.Once {
			return err
		}
	}

	if r.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("forge runner stopped")
			return nil
		case <-ticker.C:
			if err := r.runCycle(ctx); err != nil {
				// El ciclo se abandona entero; el siguiente tick sigue
				// su schedule normal
				slog.Error("forge cycle failed", "err", err)
			}
		}
	}
}

// waitForRecipes reintenta con delay fijo hasta que el recipe store devuelva
// al menos un item. El scraper externo puede no haber corrido todavía.
func (r *Runner) waitForRecipes(ctx context.Context) error {
	for attempt := 1; attempt <= r.cfg.StartupRetries; attempt++ {
		items, err := r.recipes.GetForgeItems(ctx)
		if err == nil && len(items) > 0 {
			slog.Info("recipe store ready", "items", len(items))
			return nil
		}
		if err != nil {
			slog.Info("recipe store not ready",
				"attempt", attempt, "retries", r.cfg.StartupRetries, "err", err)
		} else {
			slog.Info("recipe store empty, waiting for first scrape",
				"attempt", attempt, "retries", r.cfg.StartupRetries)
		}

		if attempt == r.cfg.StartupRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.StartupDelay):
		}
	}
	return fmt.Errorf("recipe store unavailable after %d attempts", r.cfg.StartupRetries)
}

// runCycle ejecuta un ciclo completo: load → refresh → aggregate → calculate
// → notify.
func (r *Runner) runCycle(ctx context.Context) error {
	start := r.now()

	items, err := r.recipes.GetForgeItems(ctx)
	if err != nil {
		return fmt.Errorf("forge.runCycle: load forge items: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("forge.runCycle: recipe store is empty")
	}

	auctionPrices, err := r.tracker.RefreshAuctionHouse(ctx)
	if err != nil {
		return fmt.Errorf("forge.runCycle: %w", err)
	}

	bazaar, err := r.tracker.RefreshBazaar(ctx)
	if err != nil {
		return fmt.Errorf("forge.runCycle: %w", err)
	}

	// El agregado de ventas es opcional: sin él los items solo-AH salen con
	// volumen 0, pero la tabla sigue siendo útil
	weeklySales, err := r.sales.GetWeeklySales(ctx)
	if err != nil {
		slog.Warn("could not fetch weekly AH sales", "err", err)
		weeklySales = map[string]int{}
	}

	uptime := int(r.now().Sub(r.startedAt).Seconds())

	calc := NewCalculator(r.calcCfg())
	records := calc.Calculate(Inputs{
		Items:         items,
		Bazaar:        bazaar,
		AuctionPrices: auctionPrices,
		WeeklySales:   weeklySales,
		UptimeSeconds: uptime,
	})

	if err := r.notifier.Notify(ctx, records, uptime); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Info("forge cycle complete",
		"profitable_items", len(records),
		"cache_entries", r.tracker.CacheSize(),
		"duration", r.now().Sub(start).Round(time.Millisecond),
	)
	return nil
}
