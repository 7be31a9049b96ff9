package main

import (
	"context"
	"database/sql"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wortflash/wortflash/internal/api"
	"github.com/wortflash/wortflash/internal/catalog"
	"github.com/wortflash/wortflash/internal/config"
	"github.com/wortflash/wortflash/internal/drill"
	"github.com/wortflash/wortflash/internal/logger"
	"github.com/wortflash/wortflash/internal/repository"
	"github.com/wortflash/wortflash/internal/repository/sqlite"
	"github.com/wortflash/wortflash/internal/services"
	"github.com/wortflash/wortflash/internal/stats"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Wortflash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("round_size=%d", cfg.RoundSize)
	log.Debug("new_item_bonus=%g", cfg.NewItemBonus)
	log.Debug("error_weight=%g", cfg.ErrorWeight)
	log.Debug("recent_window_hours=%g", cfg.RecentWindowHours)
	log.Debug("recent_min_factor=%g", cfg.RecentMinFactor)

	// The catalog is mandatory; the drill cannot run without items.
	items, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		os.Exit(1)
	}

	// Persistence is optional; without it statistics live in memory for
	// the lifetime of the process.
	var (
		database *sql.DB
		repo     repository.StatsRepository
	)
	database, err = sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Warn("failed to open database, statistics will not persist: %v", err)
		database = nil
	} else {
		repo = sqlite.NewStatsRepository(database)
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
	}

	ctx := context.Background()
	store := stats.NewStore(ctx, repo)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	params := drill.WeightParams{
		NewItemBonus:    cfg.NewItemBonus,
		ErrorWeight:     cfg.ErrorWeight,
		RecentWindow:    time.Duration(cfg.RecentWindowHours * float64(time.Hour)),
		RecentMinFactor: cfg.RecentMinFactor,
	}
	drillService := services.NewDrillService(items, store, params, rng, cfg.RoundSize)

	srv := &api.Server{
		DrillService: drillService,
		DB:           database,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// One last flush so statistics survive the restart.
	store.Flush(shutdownCtx)

	log.Info("===========================================")
	log.Info("Wortflash Server Stopped")
	log.Info("===========================================")
}
