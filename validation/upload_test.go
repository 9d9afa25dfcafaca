package validation

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImageAcceptsPNG(t *testing.T) {
	v := NewImageValidator()

	if err := v.ValidateImage(pngBytes(t)); err != nil {
		t.Errorf("ValidateImage rejected a valid PNG: %v", err)
	}
}

func TestValidateImageAcceptsJPEGHeader(t *testing.T) {
	v := NewImageValidator()

	// Minimal JPEG SOI marker plus padding, enough for content sniffing.
	data := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 64)...)
	if err := v.ValidateImage(data); err != nil {
		t.Errorf("ValidateImage rejected JPEG data: %v", err)
	}
}

func TestValidateImageRejectsEmpty(t *testing.T) {
	v := NewImageValidator()

	if err := v.ValidateImage(nil); err == nil {
		t.Error("expected error for empty upload")
	}
	if err := v.ValidateImage([]byte{}); err == nil {
		t.Error("expected error for zero-byte upload")
	}
}

func TestValidateImageRejectsNonImage(t *testing.T) {
	v := NewImageValidator()

	tests := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("esto no es una imagen")},
		{"pdf", []byte("%PDF-1.4 algo de contenido")},
		{"html", []byte("<html><body>hola</body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateImage(tt.data); err == nil {
				t.Errorf("expected %s to be rejected", tt.name)
			}
		})
	}
}
