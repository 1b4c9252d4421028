package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Enzo-Nunes/SkyForge/config"
	"github.com/Enzo-Nunes/SkyForge/internal/adapters/hypixel"
	"github.com/Enzo-Nunes/SkyForge/internal/adapters/notify"
	"github.com/Enzo-Nunes/SkyForge/internal/adapters/storage"
	"github.com/Enzo-Nunes/SkyForge/internal/forge"
	"github.com/Enzo-Nunes/SkyForge/internal/market"
	"github.com/Enzo-Nunes/SkyForge/internal/ports"
	"github.com/Enzo-Nunes/SkyForge/internal/sales"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one calculation cycle and exit")
	seedPath := flag.String("seed", "", "seed forge items from a JSON file and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	tableLength := flag.Int("table-length", 0, "rows shown in the console table (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *tableLength > 0 {
		cfg.Forge.TableLength = *tableLength
	}
	setupLogger(cfg.Log)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *seedPath != "" {
		runSeed(ctx, store, *seedPath)
		return
	}

	slog.Info("skyforge starting",
		"config", *configPath,
		"refresh", cfg.RefreshInterval(),
		"sales_poll", cfg.SalesPollInterval(),
		"cache_ttl", cfg.CacheTTL(),
		"once", *once,
	)

	client := hypixel.NewClient(cfg.API.BaseURL, cfg.API.Key)
	tracker := market.NewTracker(client, client)

	var notifier ports.Notifier = notify.NewConsole(cfg.Forge.TableLength)
	if cfg.Export.Path != "" {
		notifier = notify.NewMulti(notifier, notify.NewJSONFile(cfg.Export.Path))
	}

	runnerCfg := forge.DefaultConfig()
	runnerCfg.RefreshInterval = cfg.RefreshInterval()
	runnerCfg.Once = *once

	// El snapshot de cálculo se reconstruye cada ciclo releyendo el YAML:
	// cambiar budget o niveles no requiere reiniciar el proceso
	calcCfg := func() forge.CalcConfig {
		fresh, err := config.Load(*configPath)
		if err != nil {
			slog.Warn("config reload failed, keeping previous values", "err", err)
			fresh = cfg
		}
		return forge.CalcConfig{
			Budget:        fresh.Forge.Budget,
			UnlockEnabled: fresh.Forge.Unlock.Enabled,
			PlayerLevels:  fresh.Forge.Unlock.Levels,
		}
	}

	runner := forge.NewRunner(runnerCfg, calcCfg, store, store, tracker, notifier)

	if !*once {
		salesLoop := sales.NewLoop(sales.Config{
			PollInterval: cfg.SalesPollInterval(),
			CacheTTL:     cfg.CacheTTL(),
		}, client, tracker, store)
		go salesLoop.Run(ctx)
	}

	if err := runner.Run(ctx); err != nil {
		slog.Error("skyforge exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("skyforge stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
