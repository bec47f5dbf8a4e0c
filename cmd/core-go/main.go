package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkmap/core-go/internal/config"
	"linkmap/core-go/internal/db"
	"linkmap/core-go/internal/httpapi"
	"linkmap/core-go/internal/metrics"
	"linkmap/core-go/internal/overlay"
	"linkmap/core-go/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger level is part of the config; fall back to default level.
		fallback := httpapi.NewLogger("info")
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := httpapi.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var loader source.Loader
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		loader = source.NewPostgresLoader(pool)
		logger.Info().Msg("using postgres record source")
	} else {
		loader = &source.FileLoader{SitesPath: cfg.SitesPath, LinksPath: cfg.LinksPath}
		logger.Info().
			Str("sites_path", cfg.SitesPath).
			Str("links_path", cfg.LinksPath).
			Msg("using file record source")
	}

	reload := func(ctx context.Context) (*overlay.Snapshot, error) {
		return source.Refresh(ctx, loader, m)
	}

	h := httpapi.NewHandler(logger, m, reload)

	// Initial load. A failure keeps the service up but not ready; the watcher
	// or a manual reload can recover it.
	if snap, err := source.Refresh(ctx, loader, m); err != nil {
		logger.Error().Err(err).Msg("initial load failed, starting without snapshot")
	} else {
		h.SetSnapshot(snap)
		logger.Info().
			Str("snapshot_id", snap.ID).
			Int("sites", len(snap.Sites)).
			Int("links", len(snap.Links)).
			Msg("initial snapshot built")
	}

	if cfg.ReloadInterval > 0 {
		watcher := source.NewWatcher(logger, loader, cfg.ReloadInterval, m, h.SetSnapshot)
		go watcher.Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("core-go listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}
