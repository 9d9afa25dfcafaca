// Package ocr extracts text from uploaded label and prescription images.
//
// Two backends are available, selected via OCR_PROVIDER:
//   - tesseract: shells out to the local tesseract binary (default)
//   - vision: Google Cloud Vision document text detection
//
// Vision credentials come from GOOGLE_CREDENTIALS (inline JSON),
// GOOGLE_APPLICATION_CREDENTIALS (file path) or application default
// credentials, in that order.
package ocr

import (
	"github.com/seguimed/sustancias-api/interfaces"
)

// MaxImageSizeBytes is the maximum image size accepted for synchronous
// processing (20MB). The Vision API rejects larger payloads and there is
// no reason to feed tesseract anything bigger.
const MaxImageSizeBytes = 20 * 1024 * 1024

// Compile-time checks that both backends satisfy the extraction boundary.
var (
	_ interfaces.TextExtractor = (*TesseractService)(nil)
	_ interfaces.TextExtractor = (*VisionService)(nil)
)
