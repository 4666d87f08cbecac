package services

import (
	"testing"
	"time"

	"urbanserv/entity"
	"urbanserv/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogResolve(t *testing.T) {
	f := newFixture(t)

	item, err := f.catalog.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", item.Name)
	assert.InDelta(t, 108.00, item.UnitPrice, 1e-9)

	item, err = f.catalog.Resolve(entity.ItemTypeService, f.svcClean.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home Cleaning", item.Name)

	_, err = f.catalog.Resolve(entity.ItemTypeMenu, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.catalog.Resolve("gadget", f.menuDosa.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogResolveHidesInactiveItems(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&entity.MenuItem{}).
		Where("id = ?", f.menuDosa.ID).Update("status", "inactive").Error)

	_, err := f.catalog.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogCacheServesStaleUntilTTL(t *testing.T) {
	f := newFixture(t)
	cached := NewCatalogService(repository.NewCatalogRepository(f.db), time.Minute)

	item, err := cached.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)
	assert.InDelta(t, 108.00, item.UnitPrice, 1e-9)

	require.NoError(t, f.db.Model(&entity.MenuItem{}).
		Where("id = ?", f.menuDosa.ID).Update("price", 150.00).Error)

	// within the TTL the old price is still served
	item, err = cached.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)
	assert.InDelta(t, 108.00, item.UnitPrice, 1e-9)
}

func TestCatalogInvalidateDropsCache(t *testing.T) {
	f := newFixture(t)
	cached := NewCatalogService(repository.NewCatalogRepository(f.db), time.Minute)

	_, err := cached.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&entity.MenuItem{}).
		Where("id = ?", f.menuDosa.ID).Update("price", 150.00).Error)
	cached.Invalidate()

	item, err := cached.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)
	assert.InDelta(t, 150.00, item.UnitPrice, 1e-9)
}

func TestCatalogZeroTTLDisablesCaching(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&entity.MenuItem{}).
		Where("id = ?", f.menuDosa.ID).Update("price", 150.00).Error)

	item, err := f.catalog.Resolve(entity.ItemTypeMenu, f.menuDosa.ID)
	require.NoError(t, err)
	assert.InDelta(t, 150.00, item.UnitPrice, 1e-9)
}

func TestCatalogLists(t *testing.T) {
	f := newFixture(t)

	services, err := f.catalog.ListServices()
	require.NoError(t, err)
	assert.Len(t, services, 1)

	menu, err := f.catalog.ListMenu()
	require.NoError(t, err)
	assert.Len(t, menu, 1)
}
