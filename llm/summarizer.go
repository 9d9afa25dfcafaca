package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/matcher"
)

// Compile-time check to ensure Client implements Summarizer
var _ interfaces.Summarizer = (*Client)(nil)

// Summarize asks the model for a plain-language consolidated summary of the
// pregnancy risks of the matched substances. The caller is responsible for
// the no-substances and error fallbacks.
func (c *Client) Summarize(ctx context.Context, known []matcher.KnownSubstance) (string, error) {
	answer, err := c.complete(ctx, BuildSummaryPrompt(known))
	if err != nil {
		return "", fmt.Errorf("risk summary failed: %w", err)
	}
	return answer, nil
}

// BuildSummaryPrompt renders the summary instruction with one bullet per
// matched substance.
func BuildSummaryPrompt(known []matcher.KnownSubstance) string {
	var b strings.Builder

	b.WriteString("Actúa como un asistente farmacéutico empático y muy claro. Te daré una lista de sustancias encontradas en un producto y su categoría de riesgo en el embarazo (A, B, C, D, X).\n")
	b.WriteString("Tu misión es explicar en un lenguaje extremadamente sencillo, directo y sin tecnicismos qué significan estos riesgos para una mujer embarazada o que planea estarlo.\n")
	b.WriteString("Resume el nivel de precaución necesario. Al final, SIEMPRE debes incluir la recomendación enfática de consultar a un médico antes de tomar cualquier decisión.\n")
	b.WriteString("\nAquí están las sustancias:\n")

	for _, s := range known {
		fmt.Fprintf(&b, "\n- **%s (Categoría %s):** %s", s.Nombre, s.Categoria, s.Descripcion)
	}

	b.WriteString("\n\nGenera un resumen consolidado y fácil de entender basado en esta información.")
	return b.String()
}
