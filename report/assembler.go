// Package report assembles the analysis response returned to clients.
package report

import (
	"context"

	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/logging"
	"github.com/seguimed/sustancias-api/matcher"
)

// Fallback summaries used when the AI summary is unavailable. The report is
// still returned, the summary field just carries the fallback sentence.
const (
	FallbackNoKnown      = "No se encontraron sustancias conocidas para generar un resumen."
	FallbackSummaryError = "Hubo un error al generar el resumen de riesgos."
)

// Report is the JSON payload of a successful analysis.
type Report struct {
	TextoCompleto string                   `json:"texto_completo"`
	Analizadas    []matcher.KnownSubstance `json:"sustancias_analizadas"`
	Desconocidas  []string                 `json:"sustancias_desconocidas"`
	ResumenLLM    string                   `json:"resumen_llm"`
}

// Assembler builds reports, delegating the summary to an optional
// Summarizer.
type Assembler struct {
	summarizer interfaces.Summarizer
}

// NewAssembler creates an assembler. summarizer may be nil when the AI is
// not configured, reports then carry the fallback summary.
func NewAssembler(summarizer interfaces.Summarizer) *Assembler {
	return &Assembler{summarizer: summarizer}
}

// Assemble builds the final report from the OCR text and the classification
// result. Summary failures never abort the report.
func (a *Assembler) Assemble(ctx context.Context, fullText string, result matcher.Result) Report {
	report := Report{
		TextoCompleto: fullText,
		Analizadas:    result.Known,
		Desconocidas:  result.Unknown,
	}

	report.ResumenLLM = a.summarize(ctx, result.Known)
	return report
}

func (a *Assembler) summarize(ctx context.Context, known []matcher.KnownSubstance) string {
	if len(known) == 0 {
		return FallbackNoKnown
	}
	if a.summarizer == nil {
		return FallbackSummaryError
	}

	summary, err := a.summarizer.Summarize(ctx, known)
	if err != nil {
		logging.Error("Risk summary generation failed", "error", err.Error())
		return FallbackSummaryError
	}
	return summary
}
