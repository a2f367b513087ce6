package exporters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const jsonFormat = "json"

// JSONExporter writes outputs as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format returns the output format name.
func (e *JSONExporter) Format() string {
	return jsonFormat
}

// Extension returns the file extension of the format.
func (e *JSONExporter) Extension() string {
	return jsonFormat
}

// Export writes the document of out as JSON.
func (e *JSONExporter) Export(out domain.Output, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(out.Data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Type, err)
	}

	return nil
}
