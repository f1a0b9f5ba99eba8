package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/config"
	"github.com/vytor/dsamastery/internal/content"
	"github.com/vytor/dsamastery/internal/db"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/progress"
	"github.com/vytor/dsamastery/internal/reading"
	"github.com/vytor/dsamastery/internal/repository"
	"github.com/vytor/dsamastery/internal/repository/memory"
	"github.com/vytor/dsamastery/internal/repository/sqlite"
	"github.com/vytor/dsamastery/internal/services"
	"github.com/vytor/dsamastery/internal/storage"
	"github.com/vytor/dsamastery/internal/uistate"
)

// app holds everything a command needs, wired from configuration.
type app struct {
	cfg      config.Config
	log      *logger.Logger
	database *db.DB
	clock    clock.Clock
	catalog  *catalog.Catalog
	tracker  *progress.Tracker

	progressService  services.ProgressService
	dashboardService services.DashboardService
	catalogService   services.CatalogService
	contentService   services.ContentService
	uiService        services.UIService
}

// newApp opens the backend and builds the services. The catalog is only
// loaded when withCatalog is set; commands that just move the progress blob
// around do not need it.
func newApp(ctx context.Context, cfg config.Config, inMemory, withCatalog bool) (*app, error) {
	log := logger.FromContext(ctx)

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}
	a := &app{cfg: cfg, log: log, clock: clock.System{Location: loc}}

	var repo repository.KVRepository
	if inMemory {
		log.Info("using in-memory storage, progress will not survive a restart")
		repo = memory.NewKVRepository()
	} else {
		a.database, err = db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repo = sqlite.NewKVRepository(a.database.DB)
	}
	store := storage.New(repo)

	a.catalog = catalog.New(nil, nil, nil, nil, nil)
	if withCatalog {
		a.catalog, err = catalog.Load(ctx, os.DirFS(cfg.CatalogDir))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogDir, err)
		}
		if q := a.catalog.Quarantined(); len(q) > 0 {
			log.Warn("%d catalog entries were rejected while loading", len(q))
		}
	}

	var fetcher content.Fetcher
	if cfg.ContentBaseURL != "" {
		client, err := content.New(cfg.ContentBaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("content client: %w", err)
		}
		fetcher = client
	}

	ui := uistate.New(store)
	a.tracker = progress.NewTracker(store, a.clock)
	a.progressService = services.NewProgressService(a.tracker, ui, a.catalog)
	a.dashboardService = services.NewDashboardService(a.tracker, a.catalog, a.clock)
	a.catalogService = services.NewCatalogService(a.catalog, a.tracker, a.progressService)
	a.contentService = services.NewContentService(fetcher, reading.NewTracker(store, a.clock))
	a.uiService = services.NewUIService(ui)
	return a, nil
}

func (a *app) topicIDs() []string {
	return lo.Map(a.catalog.Topics(), func(t models.Topic, _ int) string { return t.ID })
}

func (a *app) Close() {
	if a.database == nil {
		return
	}
	a.log.Debug("closing database connection")
	if err := a.database.Close(); err != nil {
		a.log.Warn("failed to close database: %v", err)
	}
}
