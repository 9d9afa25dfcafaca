package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/seguimed/sustancias-api/interfaces"
	"github.com/seguimed/sustancias-api/logging"
)

// Compile-time check to ensure Client implements NameExtractor
var _ interfaces.NameExtractor = (*Client)(nil)

const extractionPrompt = "Analiza el siguiente texto. Tu única tarea es extraer los nombres de los medicamentos o sustancias activas. " +
	"Devuelve únicamente una lista de estos nombres, separados por comas. " +
	"Ignora dosis, instrucciones, nombres de doctores o cualquier otra palabra. " +
	"Si no encuentras ningún medicamento, devuelve una respuesta vacía.\n\n" +
	"Texto a analizar:\n" +
	"--- INICIO ---\n%s\n--- FIN ---"

// ExtractSubstanceNames asks the model for the medication names mentioned in
// the text. The model is instructed to answer with a comma-separated list,
// an empty answer means no medications were found.
func (c *Client) ExtractSubstanceNames(ctx context.Context, text string) ([]string, error) {
	answer, err := c.complete(ctx, fmt.Sprintf(extractionPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("substance extraction failed: %w", err)
	}

	names := ParseNameList(answer)
	logging.Info("Substance names extracted", "count", len(names))
	return names, nil
}

// ParseNameList splits a comma-separated model answer into trimmed names,
// dropping empty entries.
func ParseNameList(answer string) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return []string{}
	}

	parts := strings.Split(answer, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
