package ocr

import (
	"errors"
	"fmt"
)

// Common OCR processing errors
var (
	// ErrImageTooLarge is returned when the image exceeds the maximum size for
	// synchronous processing. Google Cloud Vision enforces a 20MB limit.
	ErrImageTooLarge = errors.New("image size exceeds the maximum limit (20MB)")

	// ErrEmptyImage is returned when the provided image data is empty.
	ErrEmptyImage = errors.New("image data is empty")

	// ErrOCRFailed is returned when the OCR backend fails to process the image.
	ErrOCRFailed = errors.New("OCR processing failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrTesseractNotFound is returned when the tesseract binary cannot be started.
	ErrTesseractNotFound = errors.New("tesseract binary not found or not executable")
)

// Error wraps errors with additional context about the OCR processing failure.
type Error struct {
	// Op is the operation that failed (e.g., "ExtractText", "NewVisionService").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with the specified operation and underlying error.
func NewError(op string, err error, details string) *Error {
	return &Error{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapError wraps an error as an Error if it isn't already one.
func WrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *Error
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewError(op, err, details)
}
