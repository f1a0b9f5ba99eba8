package services

import (
	"context"

	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/uistate"
)

// UIService handles display state kept outside the progress record
type UIService interface {
	Theme(ctx context.Context) models.Theme
	SetTheme(ctx context.Context, theme models.Theme) (models.Theme, error)
	ToggleTheme(ctx context.Context) models.Theme
	SidebarCollapsed(ctx context.Context) bool
	SetSidebarCollapsed(ctx context.Context, collapsed bool) bool
}

type uiService struct {
	store *uistate.Store
}

// NewUIService creates a new UIService
func NewUIService(store *uistate.Store) UIService {
	return &uiService{store: store}
}

func (s *uiService) Theme(ctx context.Context) models.Theme {
	return s.store.Theme(ctx)
}

func (s *uiService) SetTheme(ctx context.Context, theme models.Theme) (models.Theme, error) {
	logger.FromContext(ctx).Debug("setting theme: %s", theme)
	if err := s.store.SetTheme(ctx, theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *uiService) ToggleTheme(ctx context.Context) models.Theme {
	theme := s.store.ToggleTheme(ctx)
	logger.FromContext(ctx).Debug("theme toggled to %s", theme)
	return theme
}

func (s *uiService) SidebarCollapsed(ctx context.Context) bool {
	return s.store.SidebarCollapsed(ctx)
}

func (s *uiService) SetSidebarCollapsed(ctx context.Context, collapsed bool) bool {
	logger.FromContext(ctx).Debug("setting sidebar collapsed: %t", collapsed)
	s.store.SetSidebarCollapsed(ctx, collapsed)
	return collapsed
}
