package ocr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/seguimed/sustancias-api/logging"
)

// TesseractService extracts text by running the tesseract binary with the
// image on stdin and the recognized text on stdout. No temp files are
// written.
type TesseractService struct {
	cmd  string
	lang string
}

// NewTesseractService creates a tesseract-backed extractor. cmd is the
// binary name or path ("tesseract" when empty), lang the trained language
// code passed to -l.
func NewTesseractService(cmd, lang string) *TesseractService {
	if cmd == "" {
		cmd = "tesseract"
	}
	if lang == "" {
		lang = "spa"
	}
	return &TesseractService{cmd: cmd, lang: lang}
}

// ExtractText runs tesseract over the image and returns the recognized
// text. A blank image yields an empty string, not an error.
func (s *TesseractService) ExtractText(ctx context.Context, image []byte) (string, error) {
	const op = "ExtractText"

	if len(image) == 0 {
		return "", NewError(op, ErrEmptyImage, "")
	}
	if len(image) > MaxImageSizeBytes {
		return "", NewError(op, ErrImageTooLarge, "")
	}

	// "stdin stdout" makes tesseract read the image from stdin and print
	// the recognized text instead of writing an output file.
	cmd := exec.CommandContext(ctx, s.cmd, "stdin", "stdout", "-l", s.lang)
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", NewError(op, ErrTesseractNotFound, s.cmd)
		}
		if ctx.Err() != nil {
			return "", WrapError(op, ctx.Err(), "tesseract run canceled")
		}

		logging.Error("Tesseract run failed", "cmd", s.cmd, "stderr", stderr.String())
		return "", NewError(op, ErrOCRFailed, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
