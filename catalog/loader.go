package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/seguimed/sustancias-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// Source column headers. The alias column is optional, the rest are required.
const (
	colNombre      = "Nombre"
	colCategoria   = "Categoría"
	colDescripcion = "Declaración de seguridad"
	colAlias       = "NombreNormalizado"
)

// LoadError reports a missing or malformed catalog source. Callers must treat
// it as "lookup disabled" and keep serving, not as a fatal condition.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileLoader loads the catalog from a CSV file on disk.
type FileLoader struct {
	Path string
}

// Load reads and parses the catalog file.
func (l FileLoader) Load() (*Catalog, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, &LoadError{Source: l.Path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("Failed to close catalog file", "error", err)
		}
	}()

	c, err := Parse(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = l.Path
			return nil, le
		}
		return nil, &LoadError{Source: l.Path, Err: err}
	}
	return c, nil
}

// Parse reads a CSV substance table. The source ships in latin-1, but some
// exports are re-saved as UTF-8, so the content is sniffed first and decoded
// from ISO8859-1 only when it is not valid UTF-8.
func Parse(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: "catalog", Err: err}
	}

	var decoded io.Reader
	if utf8.Valid(raw) {
		decoded = bytes.NewReader(raw)
	} else {
		decoded = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw))
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Source: "catalog", Err: fmt.Errorf("missing header row: %w", err)}
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, &LoadError{Source: "catalog", Err: err}
	}

	var records []Record
	lineCount := 1
	skippedEmptyNames := 0
	skippedShortRows := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: "catalog", Err: fmt.Errorf("line %d: %w", lineCount+1, err)}
		}
		lineCount++

		nombre := field(row, cols.nombre)
		if strings.TrimSpace(nombre) == "" {
			skippedEmptyNames++
			continue
		}
		if len(row) <= cols.categoria {
			skippedShortRows++
			continue
		}

		// A missing safety statement becomes the empty string, never an
		// absent field.
		descripcion := field(row, cols.descripcion)

		var aliases []string
		if cols.alias >= 0 {
			if alias := field(row, cols.alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}

		records = append(records, NewRecord(nombre, field(row, cols.categoria), descripcion, aliases...))
	}

	if skippedEmptyNames > 0 || skippedShortRows > 0 {
		logging.Info("Catalog skip statistics",
			"empty_names", skippedEmptyNames,
			"short_rows", skippedShortRows,
			"total_lines", lineCount,
			"records_parsed", len(records))
	}

	return New(records), nil
}

type columnIndexes struct {
	nombre      int
	categoria   int
	descripcion int
	alias       int // -1 when the source has no alias column
}

func resolveColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{nombre: -1, categoria: -1, descripcion: -1, alias: -1}

	for i, name := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		switch name {
		case colNombre:
			cols.nombre = i
		case colCategoria:
			cols.categoria = i
		case colDescripcion:
			cols.descripcion = i
		case colAlias:
			cols.alias = i
		}
	}

	if cols.nombre < 0 || cols.categoria < 0 || cols.descripcion < 0 {
		return cols, fmt.Errorf("missing required columns, need %q, %q and %q",
			colNombre, colCategoria, colDescripcion)
	}
	return cols, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
