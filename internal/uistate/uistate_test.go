package uistate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/storage"
	"github.com/vytor/dsamastery/internal/testutil"
	"github.com/vytor/dsamastery/internal/uistate"
)

func TestTheme(t *testing.T) {
	ctx := context.Background()
	ui := uistate.New(testutil.NewMemoryStore(t))

	assert.Equal(t, models.ThemeDark, ui.Theme(ctx))

	require.NoError(t, ui.SetTheme(ctx, models.ThemeLight))
	assert.Equal(t, models.ThemeLight, ui.Theme(ctx))

	assert.Equal(t, models.ThemeDark, ui.ToggleTheme(ctx))
	assert.Equal(t, models.ThemeLight, ui.ToggleTheme(ctx))
	assert.Equal(t, models.ThemeLight, ui.Theme(ctx))
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	ctx := context.Background()
	ui := uistate.New(testutil.NewMemoryStore(t))

	err := ui.SetTheme(ctx, "solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
	assert.Equal(t, models.ThemeDark, ui.Theme(ctx))
}

func TestTheme_GarbageStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(t)
	store.Set(ctx, storage.ThemeKey, "neon")

	assert.Equal(t, models.ThemeDark, uistate.New(store).Theme(ctx))
}

func TestSidebar(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(t)
	ui := uistate.New(store)

	assert.False(t, ui.SidebarCollapsed(ctx))
	ui.SetSidebarCollapsed(ctx, true)
	assert.True(t, ui.SidebarCollapsed(ctx))

	// independent keys
	assert.False(t, store.Has(ctx, storage.ThemeKey))
}
