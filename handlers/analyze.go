package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/logging"
	"github.com/seguimed/sustancias-api/matcher"
	"github.com/seguimed/sustancias-api/metrics"
	"github.com/seguimed/sustancias-api/report"
)

// User-facing error messages of the upload endpoint.
const (
	errNoFile        = "No se encontró ningún archivo"
	errEmptyFilename = "No se seleccionó ningún archivo"
	errUnavailable   = "No se pudo procesar el archivo o la base de datos no está cargada."
	errInternal      = "Error interno del servidor"
)

// AnalyzeHandler runs the analysis pipeline for an uploaded image: OCR,
// AI name extraction, catalog classification and report assembly.
type AnalyzeHandler struct {
	store     interfaces.CatalogStore
	ocr       interfaces.TextExtractor
	extractor interfaces.NameExtractor
	assembler *report.Assembler
	validator interfaces.UploadValidator
}

// NewAnalyzeHandler creates the upload handler. extractor may be nil when
// the AI is not configured, the pipeline then classifies an empty candidate
// list.
func NewAnalyzeHandler(
	store interfaces.CatalogStore,
	ocr interfaces.TextExtractor,
	extractor interfaces.NameExtractor,
	assembler *report.Assembler,
	validator interfaces.UploadValidator,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		store:     store,
		ocr:       ocr,
		extractor: extractor,
		assembler: assembler,
		validator: validator,
	}
}

// Upload handles POST /upload: multipart form with a "file" field holding
// the label or prescription image.
func (h *AnalyzeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, errNoFile)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		RespondWithError(w, http.StatusBadRequest, errEmptyFilename)
		return
	}

	cat := h.store.GetCatalog()
	if cat == nil || cat.Len() == 0 {
		logging.Warn("Upload rejected, catalog unavailable")
		RespondWithError(w, http.StatusInternalServerError, errUnavailable)
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		logging.Error("Failed to read uploaded file", "error", err.Error())
		RespondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	if err := h.validator.ValidateImage(image); err != nil {
		logging.Warn("Upload validation failed", "filename", header.Filename, "error", err.Error())
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	ocrStart := time.Now()
	fullText, err := h.ocr.ExtractText(ctx, image)
	metrics.ObserveStage(metrics.StageOCR, ocrStart)
	if err != nil {
		logging.Error("OCR stage failed", "error", err.Error())
		RespondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	candidates := h.extractCandidates(ctx, fullText)

	classifyStart := time.Now()
	result := matcher.Classify(candidates, cat)
	metrics.ObserveStage(metrics.StageClassify, classifyStart)
	metrics.SubstancesClassified.WithLabelValues(metrics.ResultKnown).Add(float64(len(result.Known)))
	metrics.SubstancesClassified.WithLabelValues(metrics.ResultUnknown).Add(float64(len(result.Unknown)))

	summaryStart := time.Now()
	rep := h.assembler.Assemble(ctx, fullText, result)
	metrics.ObserveStage(metrics.StageSummary, summaryStart)

	logging.Info("Analysis completed",
		"filename", header.Filename,
		"candidates", len(candidates),
		"known", len(result.Known),
		"unknown", len(result.Unknown))

	RespondWithJSON(w, http.StatusOK, rep)
}

// extractCandidates runs the AI extraction stage. Unavailability and
// failures both degrade to an empty candidate list, the report is still
// produced.
func (h *AnalyzeHandler) extractCandidates(ctx context.Context, fullText string) []string {
	if h.extractor == nil {
		return []string{}
	}

	start := time.Now()
	candidates, err := h.extractor.ExtractSubstanceNames(ctx, fullText)
	metrics.ObserveStage(metrics.StageExtract, start)
	if err != nil {
		logging.Warn("Substance extraction failed, continuing without candidates", "error", err.Error())
		return []string{}
	}
	return candidates
}
