// Package interfaces defines the core abstractions of the substance analysis
// service so the pipeline stages can be wired and tested independently.
package interfaces

import (
	"context"
	"time"

	"github.com/seguimed/sustancias-api/catalog"
	"github.com/seguimed/sustancias-api/matcher"
)

// CatalogStore provides thread-safe access to the substance catalog. The
// catalog itself is immutable, the store only swaps the current instance
// atomically when a (re)load completes.
type CatalogStore interface {
	// GetCatalog returns the current catalog, or nil while the catalog is
	// unavailable (load failed or not finished yet).
	GetCatalog() *catalog.Catalog
	GetLastLoaded() time.Time
	IsLoading() bool
	GetServerStartTime() time.Time

	ReplaceCatalog(c *catalog.Catalog)
	BeginLoad() bool
	EndLoad()
	SetServerStartTime(t time.Time)
}

// CatalogLoader builds a fresh catalog from the external source.
type CatalogLoader interface {
	Load() (*catalog.Catalog, error)
}

// TextExtractor is the OCR boundary: image bytes in, recognized text out.
// An empty string is a valid result (blank image), an error means the OCR
// stage itself failed and the request cannot proceed.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// NameExtractor pulls candidate substance names out of free text. Failures
// and unavailability degrade to an empty candidate list at the call site.
type NameExtractor interface {
	ExtractSubstanceNames(ctx context.Context, text string) ([]string, error)
}

// Summarizer produces the plain-language risk summary for the matched
// substances. It receives only the matched subset, never the whole catalog.
type Summarizer interface {
	Summarize(ctx context.Context, known []matcher.KnownSubstance) (string, error)
}

// UploadValidator checks uploaded files before the pipeline runs.
type UploadValidator interface {
	// ValidateImage rejects empty uploads and non-image content.
	ValidateImage(data []byte) error
}
