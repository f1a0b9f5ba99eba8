package api

import (
	"context"

	"github.com/vytor/dsamastery/internal/services"
)

// Pinger is satisfied by *sql.DB and reports backend reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	// DB is nil when running on the in-memory backend.
	DB Pinger

	ProgressService  services.ProgressService
	DashboardService services.DashboardService
	CatalogService   services.CatalogService
	ContentService   services.ContentService
	UIService        services.UIService
}
