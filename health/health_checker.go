// Package health provides health checking functionality for the substance
// analysis API.
package health

import (
	"math"
	"net/http"
	"runtime"
	"time"

	"github.com/seguimed/sustancias-api/interfaces"
)

// Checker computes the health status of the service from the catalog state.
type Checker struct {
	store       interfaces.CatalogStore
	aiEnabled   bool
	ocrProvider string
}

// NewChecker creates a health checker with injected dependencies.
func NewChecker(store interfaces.CatalogStore, aiEnabled bool, ocrProvider string) *Checker {
	return &Checker{
		store:       store,
		aiEnabled:   aiEnabled,
		ocrProvider: ocrProvider,
	}
}

// HealthCheck returns the health status and response data for the /health
// endpoint. A missing catalog is reported as degraded but still answers
// 200, the process itself is up and the state is visible in the payload.
func (c *Checker) HealthCheck() (status string, data map[string]any, httpStatus int) {
	cat := c.store.GetCatalog()
	lastLoaded := c.store.GetLastLoaded()
	isLoading := c.store.IsLoading()
	uptime := time.Since(c.store.GetServerStartTime())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	records := 0
	if cat != nil {
		records = cat.Len()
	}

	switch {
	case records == 0:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"catalog_records": records,
		"last_loaded":     lastLoaded.Format(time.RFC3339),
		"is_loading":      isLoading,
		"ai_enabled":      c.aiEnabled,
		"ocr_provider":    c.ocrProvider,
		"uptime_seconds":  math.Round(uptime.Seconds()*10) / 10,
		"memory_usage_mb": int(m.Alloc / 1024 / 1024),
	}

	return status, data, httpStatus
}
