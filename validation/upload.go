// Package validation checks uploaded files before the analysis pipeline
// runs.
package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/seguimed/sustancias-api/interfaces"
)

// Compile-time check to ensure ImageValidator implements UploadValidator
var _ interfaces.UploadValidator = (*ImageValidator)(nil)

// ImageValidator accepts image uploads based on content sniffing, never on
// the client-supplied filename or Content-Type header.
type ImageValidator struct{}

// NewImageValidator creates an upload validator.
func NewImageValidator() *ImageValidator {
	return &ImageValidator{}
}

// ValidateImage rejects empty uploads and content that does not sniff as an
// image.
func (v *ImageValidator) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("uploaded file is empty")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unsupported file type %q, expected an image", contentType)
	}

	return nil
}
