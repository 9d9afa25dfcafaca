package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/joho/godotenv"
	"github.com/seguimed/sustancias-api/catalog"
	"github.com/seguimed/sustancias-api/config"
	"github.com/seguimed/sustancias-api/data"
	"github.com/seguimed/sustancias-api/handlers"
	"github.com/seguimed/sustancias-api/health"
	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/llm"
	"github.com/seguimed/sustancias-api/logging"
	"github.com/seguimed/sustancias-api/ocr"
	"github.com/seguimed/sustancias-api/report"
	"github.com/seguimed/sustancias-api/scheduler"
	"github.com/seguimed/sustancias-api/server"
	"github.com/seguimed/sustancias-api/validation"
)

func main() {
	// .env is optional, environment variables take precedence
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Configuration error", "error", err.Error())
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	container := data.NewCatalogContainer()
	container.SetServerStartTime(time.Now())

	// Catalog loading: initial load now, scheduled reloads when enabled
	loader := &catalog.FileLoader{Path: cfg.CatalogPath}
	sched := scheduler.NewScheduler(container, loader, cfg.CatalogRefresh)
	if err := sched.Start(); err != nil {
		logging.Error("Scheduler failed to start", "error", err.Error())
		os.Exit(1)
	}
	defer sched.Stop()

	textExtractor, err := buildTextExtractor(cfg)
	if err != nil {
		logging.Error("OCR setup failed", "error", err.Error())
		os.Exit(1)
	}

	var nameExtractor interfaces.NameExtractor
	var summarizer interfaces.Summarizer
	if cfg.AIEnabled() {
		client := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.AITimeout)
		nameExtractor = client
		summarizer = client
	} else {
		logging.Warn("OPENAI_API_KEY not set, AI extraction and summaries disabled")
	}

	analyze := handlers.NewAnalyzeHandler(
		container,
		textExtractor,
		nameExtractor,
		report.NewAssembler(summarizer),
		validation.NewImageValidator(),
	)
	checker := health.NewChecker(container, cfg.AIEnabled(), cfg.OCRProvider)

	srv := server.NewServer(cfg, container, analyze, checker)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err.Error())
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err.Error())
		os.Exit(1)
	}
}

// buildTextExtractor wires the configured OCR backend.
func buildTextExtractor(cfg *config.Config) (interfaces.TextExtractor, error) {
	switch cfg.OCRProvider {
	case config.OCRProviderVision:
		return ocr.NewVisionService(context.Background(), visionLanguageHint(cfg.OCRLanguage))
	default:
		return ocr.NewTesseractService(cfg.TesseractCmd, cfg.OCRLanguage), nil
	}
}

// visionLanguageHint maps a tesseract-style language code to the BCP-47
// hint the Vision API expects.
func visionLanguageHint(lang string) string {
	switch lang {
	case "spa":
		return "es"
	case "eng":
		return "en"
	case "fra":
		return "fr"
	default:
		return lang
	}
}
