// Package scheduler coordinates catalog loading for the substance analysis
// API: the initial load at startup and, when enabled, scheduled reloads so
// catalog edits are picked up without a restart.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/logging"
	"github.com/seguimed/sustancias-api/metrics"
)

// Scheduler handles catalog loads using dependency injection
type Scheduler struct {
	store     interfaces.CatalogStore
	loader    interfaces.CatalogLoader
	refresh   bool
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// When refresh is false the catalog is loaded once at startup and never
// again.
func NewScheduler(store interfaces.CatalogStore, loader interfaces.CatalogLoader, refresh bool) *Scheduler {
	return &Scheduler{
		store:     store,
		loader:    loader,
		refresh:   refresh,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial catalog load and schedules reloads when
// enabled. A failed initial load does not stop the service, the API runs
// degraded until a reload succeeds or the process is restarted.
func (s *Scheduler) Start() error {
	if err := s.loadCatalog(); err != nil {
		logging.Warn("Initial catalog load failed, serving degraded", "error", err.Error())
	}

	if !s.refresh {
		return nil
	}

	// Reload at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.loadCatalog(); err != nil {
			logging.Error("Failed to reload catalog", "error", err.Error())
		}
	})

	if err != nil {
		logging.Error("Failed to schedule catalog reloads", "error", err.Error())
		return fmt.Errorf("failed to schedule catalog reloads: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// loadCatalog performs a complete catalog load using the injected loader.
// The current catalog stays in place when the load fails.
func (s *Scheduler) loadCatalog() error {
	// Prevent concurrent loads
	if !s.store.BeginLoad() {
		logging.Info("Catalog load already in progress, skipping...")
		return nil
	}
	defer s.store.EndLoad()

	logging.Info(fmt.Sprintf("Starting catalog load at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	cat, err := s.loader.Load()
	if err != nil {
		logging.Error("Failed to load catalog", "error", err.Error())
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.store.ReplaceCatalog(cat)
	metrics.CatalogRecords.Set(float64(cat.Len()))

	elapsed := time.Since(start)
	logging.Info("Catalog load completed", "duration", elapsed.String(), "record_count", cat.Len())

	return nil
}
