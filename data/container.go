// Package data provides the thread-safe holder for the substance catalog.
// The catalog is immutable once built, the container swaps it atomically so
// request handlers never observe a partially loaded table.
package data

import (
	"sync/atomic"
	"time"

	"github.com/seguimed/sustancias-api/catalog"
	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/logging"
)

// Compile-time check to ensure CatalogContainer implements CatalogStore
var _ interfaces.CatalogStore = (*CatalogContainer)(nil)

// CatalogContainer holds the current catalog behind an atomic pointer.
type CatalogContainer struct {
	catalog         atomic.Value // *catalog.Catalog
	lastLoaded      atomic.Value // time.Time
	loading         atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewCatalogContainer creates a container with no catalog loaded yet.
func NewCatalogContainer() *CatalogContainer {
	cc := &CatalogContainer{}
	cc.catalog.Store((*catalog.Catalog)(nil))
	cc.lastLoaded.Store(time.Time{})
	cc.serverStartTime.Store(time.Time{})
	return cc
}

// GetCatalog returns the current catalog, nil while unavailable.
func (cc *CatalogContainer) GetCatalog() *catalog.Catalog {
	if v := cc.catalog.Load(); v != nil {
		if c, ok := v.(*catalog.Catalog); ok {
			return c
		}
	}
	return nil
}

// GetLastLoaded returns the timestamp of the last successful load.
func (cc *CatalogContainer) GetLastLoaded() time.Time {
	if v := cc.lastLoaded.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the last loaded value")
	return time.Time{}
}

// IsLoading returns true while a load is in progress.
func (cc *CatalogContainer) IsLoading() bool {
	return cc.loading.Load()
}

// SetServerStartTime records the process start time.
func (cc *CatalogContainer) SetServerStartTime(t time.Time) {
	cc.serverStartTime.Store(t)
}

// GetServerStartTime returns the process start time.
func (cc *CatalogContainer) GetServerStartTime() time.Time {
	if v := cc.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// ReplaceCatalog atomically swaps in a freshly loaded catalog.
func (cc *CatalogContainer) ReplaceCatalog(c *catalog.Catalog) {
	cc.catalog.Store(c)
	cc.lastLoaded.Store(time.Now())
}

// BeginLoad marks the start of a load. Returns false if another load is
// already running.
func (cc *CatalogContainer) BeginLoad() bool {
	return cc.loading.CompareAndSwap(false, true)
}

// EndLoad marks the end of a load.
func (cc *CatalogContainer) EndLoad() {
	cc.loading.Store(false)
}
