package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/dsamastery/internal/api"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the progress API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		log.Info("===========================================")
		log.Info("DSA Mastery Server Starting")
		log.Info("===========================================")
		log.Debug("addr=%s", cfg.Addr)
		log.Debug("db_path=%s", cfg.DBPath)
		log.Debug("catalog_dir=%s", cfg.CatalogDir)
		log.Debug("content_base_url=%s", cfg.ContentBaseURL)
		log.Debug("timezone=%s", cfg.Timezone)
		log.Debug("prefetch_worker_count=%d", cfg.PrefetchWorkerCount)
		log.Debug("prefetch_queue_size=%d", cfg.PrefetchQueueSize)

		a, err := newApp(ctx, cfg, inMemory, true)
		if err != nil {
			log.Error("startup failed: %v", err)
			return err
		}
		defer a.Close()

		stats := a.catalog.Stats()
		log.Info("catalog loaded: %d topics, %d problems, %d concepts, %d patterns",
			stats.TopicCount, stats.ProblemCount, stats.ConceptCount, stats.PatternCount)

		srv := &api.Server{
			ProgressService:  a.progressService,
			DashboardService: a.dashboardService,
			CatalogService:   a.catalogService,
			ContentService:   a.contentService,
			UIService:        a.uiService,
		}
		if a.database != nil {
			srv.DB = a.database
		}

		workerCtx, cancelWorkers := context.WithCancel(ctx)
		defer cancelWorkers()
		var prefetchPool *worker.Pool
		if cfg.ContentPrefetch && cfg.ContentBaseURL != "" {
			prefetchPool = worker.NewPool(cfg.PrefetchWorkerCount, cfg.PrefetchQueueSize)
			prefetchPool.Start(workerCtx)
			a.contentService.Prefetch(ctx, prefetchPool, a.topicIDs())
		}

		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      srv.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("HTTP server listening on %s", cfg.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			if err != nil {
				log.Error("HTTP server error: %v", err)
				return err
			}
		case <-sigCtx.Done():
			log.Info("received shutdown signal, initiating graceful shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Debug("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error: %v", err)
		}

		if prefetchPool != nil {
			log.Debug("stopping prefetch pool")
			prefetchPool.Stop()
		}

		log.Info("===========================================")
		log.Info("DSA Mastery Server Stopped")
		log.Info("===========================================")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
