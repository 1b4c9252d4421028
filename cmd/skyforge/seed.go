package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/Enzo-Nunes/SkyForge/internal/adapters/storage"
	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// seedDocument es el formato del export del scraper de la wiki.
type seedDocument struct {
	Items map[string]seedItem `json:"items"`
}

type seedItem struct {
	DurationHours float64        `json:"duration_hours"`
	Recipe        map[string]int `json:"recipe"`
	Requirements  map[string]int `json:"requirements"`
}

// runSeed reemplaza la tabla de items forjables con el contenido del archivo.
func runSeed(ctx context.Context, store *storage.SQLiteStorage, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read seed file", "path", path, "err", err)
		os.Exit(1)
	}

	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Error("failed to parse seed file", "path", path, "err", err)
		os.Exit(1)
	}

	items := make(map[string]domain.ForgeItem, len(doc.Items))
	for name, raw := range doc.Items {
		if raw.DurationHours <= 0 {
			slog.Error("seed item has non-positive duration", "item", name, "duration_hours", raw.DurationHours)
			os.Exit(1)
		}
		items[name] = domain.ForgeItem{
			Name:          name,
			DurationHours: raw.DurationHours,
			Recipe:        raw.Recipe,
			Requirements:  raw.Requirements,
		}
	}

	if err := store.UpsertForgeItems(ctx, items); err != nil {
		slog.Error("failed to seed forge items", "err", err)
		os.Exit(1)
	}

	slog.Info("forge items seeded", "items", len(items), "source", path)
}
