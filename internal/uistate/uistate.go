// Package uistate persists the small display preferences kept outside the
// progress record: colour theme and sidebar state. Each lives under its own key.
package uistate

import (
	"context"
	"fmt"

	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/storage"
)

// DefaultTheme applies when no valid theme is stored.
const DefaultTheme = models.ThemeDark

type Store struct {
	store *storage.Store
}

func New(store *storage.Store) *Store {
	return &Store{store: store}
}

func (s *Store) Theme(ctx context.Context) models.Theme {
	theme := storage.Get(ctx, s.store, storage.ThemeKey, DefaultTheme)
	if !theme.Valid() {
		return DefaultTheme
	}
	return theme
}

func (s *Store) SetTheme(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return errors.NewValidationError("theme", fmt.Sprintf("must be %q or %q", models.ThemeLight, models.ThemeDark))
	}
	s.store.Set(ctx, storage.ThemeKey, theme)
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) models.Theme {
	next := models.ThemeLight
	if s.Theme(ctx) == models.ThemeLight {
		next = models.ThemeDark
	}
	s.store.Set(ctx, storage.ThemeKey, next)
	return next
}

func (s *Store) SidebarCollapsed(ctx context.Context) bool {
	return storage.Get(ctx, s.store, storage.SidebarKey, false)
}

func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	s.store.Set(ctx, storage.SidebarKey, collapsed)
}
