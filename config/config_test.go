package config

import (
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}

func clearAll(t *testing.T) {
	t.Helper()
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAll(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.CatalogPath != "sustancias.csv" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	if cfg.CatalogRefresh {
		t.Error("CatalogRefresh should default to false")
	}
	if cfg.OCRProvider != OCRProviderTesseract {
		t.Errorf("OCRProvider = %q", cfg.OCRProvider)
	}
	if cfg.TesseractCmd != "tesseract" {
		t.Errorf("TesseractCmd = %q", cfg.TesseractCmd)
	}
	if cfg.OCRLanguage != "spa" {
		t.Errorf("OCRLanguage = %q", cfg.OCRLanguage)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %s", cfg.AITimeout)
	}
	if cfg.AIEnabled() {
		t.Error("AIEnabled should be false without OPENAI_API_KEY")
	}
}

func TestLoadAIEnabled(t *testing.T) {
	clearAll(t)
	setEnv(t, "OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.AIEnabled() {
		t.Error("AIEnabled should be true with a key set")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad port", "PORT", "notanumber", "PORT"},
		{"privileged port", "PORT", "80", "privileged"},
		{"port out of range", "PORT", "70000", "PORT"},
		{"bad env", "ENV", "production!", "ENV"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad ocr provider", "OCR_PROVIDER", "azure", "OCR_PROVIDER"},
		{"bad ocr lang", "OCR_LANG", "spa;rm -rf", "OCR_LANG"},
		{"bad ai timeout", "AI_TIMEOUT", "treinta", "AI_TIMEOUT"},
		{"negative ai timeout", "AI_TIMEOUT", "-5s", "AI_TIMEOUT"},
		{"huge ai timeout", "AI_TIMEOUT", "1h", "AI_TIMEOUT"},
		{"bad address", "ADDRESS", "not.an.ip", "ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAll(t)
			setEnv(t, tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOCRProviderCaseInsensitive(t *testing.T) {
	clearAll(t)
	setEnv(t, "OCR_PROVIDER", "VISION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OCRProvider != OCRProviderVision {
		t.Errorf("OCRProvider = %q, expected lowercased vision", cfg.OCRProvider)
	}
}

func TestLoadCatalogRefresh(t *testing.T) {
	clearAll(t)
	setEnv(t, "CATALOG_REFRESH", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.CatalogRefresh {
		t.Error("CatalogRefresh should be true")
	}
}

func TestLoadCustomAITimeout(t *testing.T) {
	clearAll(t)
	setEnv(t, "AI_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AITimeout != 45*time.Second {
		t.Errorf("AITimeout = %s, expected 45s", cfg.AITimeout)
	}
}
