package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seguimed/sustancias-api/catalog"
	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/matcher"
	"github.com/seguimed/sustancias-api/report"
)

// Fakes for the pipeline collaborators

type fakeStore struct {
	catalog *catalog.Catalog
}

func (f *fakeStore) GetCatalog() *catalog.Catalog    { return f.catalog }
func (f *fakeStore) GetLastLoaded() time.Time        { return time.Now() }
func (f *fakeStore) IsLoading() bool                 { return false }
func (f *fakeStore) GetServerStartTime() time.Time   { return time.Now() }
func (f *fakeStore) ReplaceCatalog(*catalog.Catalog) {}
func (f *fakeStore) BeginLoad() bool                 { return true }
func (f *fakeStore) EndLoad()                        {}
func (f *fakeStore) SetServerStartTime(time.Time)    {}

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeExtractor struct {
	names []string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractSubstanceNames(ctx context.Context, text string) ([]string, error) {
	f.calls++
	return f.names, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, known []matcher.KnownSubstance) (string, error) {
	return f.summary, f.err
}

type fakeValidator struct {
	err error
}

func (f *fakeValidator) ValidateImage(data []byte) error { return f.err }

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Record{
		catalog.NewRecord("Ibuprofeno", "C", "Evitar en el tercer trimestre."),
		catalog.NewRecord("Paracetamol", "B", "Generalmente seguro."),
	})
}

// uploadRequest builds a multipart POST with the given file field and name.
func uploadRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rr.Body.String(), err)
	}
	return payload["error"]
}

func newTestHandler(store *fakeStore, ocr *fakeOCR, extractor *fakeExtractor, summarizer *fakeSummarizer, validator *fakeValidator) *AnalyzeHandler {
	// Typed nils must not become non-nil interfaces, the handler checks for
	// a missing extractor.
	var nameExtractor interfaces.NameExtractor
	if extractor != nil {
		nameExtractor = extractor
	}
	var sum interfaces.Summarizer
	if summarizer != nil {
		sum = summarizer
	}
	return NewAnalyzeHandler(store, ocr, nameExtractor, report.NewAssembler(sum), validator)
}

func TestUploadMissingFile(t *testing.T) {
	ocr := &fakeOCR{}
	h := newTestHandler(&fakeStore{catalog: testCatalog()}, ocr, &fakeExtractor{}, nil, &fakeValidator{})

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "", "", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeError(t, rr); got != "No se encontró ningún archivo" {
		t.Errorf("error = %q", got)
	}
	if ocr.calls != 0 {
		t.Error("OCR must not run without a file")
	}
}

func TestUploadWrongFieldName(t *testing.T) {
	h := newTestHandler(&fakeStore{catalog: testCatalog()}, &fakeOCR{}, &fakeExtractor{}, nil, &fakeValidator{})

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "imagen", "foto.png", []byte("data")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeError(t, rr); got != "No se encontró ningún archivo" {
		t.Errorf("error = %q", got)
	}
}

func TestUploadEmptyFilename(t *testing.T) {
	ocr := &fakeOCR{}
	h := newTestHandler(&fakeStore{catalog: testCatalog()}, ocr, &fakeExtractor{}, nil, &fakeValidator{})

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "", []byte("data")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeError(t, rr); got != "No se seleccionó ningún archivo" {
		t.Errorf("error = %q", got)
	}
	if ocr.calls != 0 {
		t.Error("OCR must not run for an empty filename")
	}
}

func TestUploadCatalogUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"nil catalog", &fakeStore{}},
		{"empty catalog", &fakeStore{catalog: catalog.New(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ocr := &fakeOCR{}
			h := newTestHandler(tt.store, ocr, &fakeExtractor{}, nil, &fakeValidator{})

			rr := httptest.NewRecorder()
			h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d", rr.Code)
			}
			if got := decodeError(t, rr); got != "No se pudo procesar el archivo o la base de datos no está cargada." {
				t.Errorf("error = %q", got)
			}
			if ocr.calls != 0 {
				t.Error("OCR must not run while the catalog is unavailable")
			}
		})
	}
}

func TestUploadValidationFailure(t *testing.T) {
	ocr := &fakeOCR{}
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		ocr,
		&fakeExtractor{},
		nil,
		&fakeValidator{err: errors.New("unsupported file type")},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "nota.txt", []byte("texto plano")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if ocr.calls != 0 {
		t.Error("OCR must not run for an invalid upload")
	}
}

func TestUploadOCRFailure(t *testing.T) {
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{err: errors.New("tesseract exploded")},
		&fakeExtractor{},
		nil,
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeError(t, rr); got != "Error interno del servidor" {
		t.Errorf("error = %q", got)
	}
}

func TestUploadSuccess(t *testing.T) {
	extractor := &fakeExtractor{names: []string{"Ibuprofeno", "Melatonina"}}
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{text: "RECETA ibuprofeno 600mg melatonina"},
		extractor,
		&fakeSummarizer{summary: "Resumen de riesgos."},
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "receta.png", []byte("data")))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rr.Code, rr.Body.String())
	}

	var rep report.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if rep.TextoCompleto != "RECETA ibuprofeno 600mg melatonina" {
		t.Errorf("texto_completo = %q", rep.TextoCompleto)
	}
	if len(rep.Analizadas) != 1 || rep.Analizadas[0].Nombre != "Ibuprofeno" {
		t.Errorf("sustancias_analizadas = %v", rep.Analizadas)
	}
	if len(rep.Desconocidas) != 1 || rep.Desconocidas[0] != "Melatonina" {
		t.Errorf("sustancias_desconocidas = %v", rep.Desconocidas)
	}
	if rep.ResumenLLM != "Resumen de riesgos." {
		t.Errorf("resumen_llm = %q", rep.ResumenLLM)
	}
	if extractor.calls != 1 {
		t.Errorf("extractor called %d times", extractor.calls)
	}
}

func TestUploadSuccessPayloadKeys(t *testing.T) {
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{text: "texto"},
		&fakeExtractor{names: []string{}},
		nil,
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	for _, key := range []string{"texto_completo", "sustancias_analizadas", "sustancias_desconocidas", "resumen_llm"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("payload is missing key %q", key)
		}
	}

	// Empty lists must encode as [], not null.
	if string(payload["sustancias_analizadas"]) != "[]" {
		t.Errorf("sustancias_analizadas = %s", payload["sustancias_analizadas"])
	}
	if string(payload["sustancias_desconocidas"]) != "[]" {
		t.Errorf("sustancias_desconocidas = %s", payload["sustancias_desconocidas"])
	}
}

func TestUploadExtractorFailureDegrades(t *testing.T) {
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{text: "texto"},
		&fakeExtractor{err: errors.New("quota exceeded")},
		&fakeSummarizer{summary: "no debería usarse"},
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, extraction failure must not fail the request", rr.Code)
	}

	var rep report.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if len(rep.Analizadas) != 0 || len(rep.Desconocidas) != 0 {
		t.Errorf("expected empty lists, got %+v", rep)
	}
	if rep.ResumenLLM != report.FallbackNoKnown {
		t.Errorf("resumen_llm = %q", rep.ResumenLLM)
	}
}

func TestUploadNilExtractor(t *testing.T) {
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{text: "texto"},
		nil,
		nil,
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, a missing AI must not fail the request", rr.Code)
	}

	var rep report.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if rep.ResumenLLM != report.FallbackNoKnown {
		t.Errorf("resumen_llm = %q", rep.ResumenLLM)
	}
}

func TestUploadSummarizerFailureStillOK(t *testing.T) {
	h := newTestHandler(
		&fakeStore{catalog: testCatalog()},
		&fakeOCR{text: "texto"},
		&fakeExtractor{names: []string{"Ibuprofeno"}},
		&fakeSummarizer{err: errors.New("api down")},
		&fakeValidator{},
	)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadRequest(t, "file", "foto.png", []byte("data")))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, summary failure must not fail the request", rr.Code)
	}

	var rep report.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if rep.ResumenLLM != report.FallbackSummaryError {
		t.Errorf("resumen_llm = %q", rep.ResumenLLM)
	}
	if len(rep.Analizadas) != 1 {
		t.Errorf("sustancias_analizadas = %v", rep.Analizadas)
	}
}
