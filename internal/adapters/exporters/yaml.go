package exporters

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const (
	yamlFormat    = "yaml"
	yamlExtension = "yaml"
)

// YAMLExporter writes outputs as YAML.
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Format returns the output format name.
func (e *YAMLExporter) Format() string {
	return yamlFormat
}

// Extension returns the file extension of the format.
func (e *YAMLExporter) Extension() string {
	return yamlExtension
}

// Export writes the document of out as YAML.
func (e *YAMLExporter) Export(out domain.Output, output io.Writer) error {
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)

	if err := encoder.Encode(out.Data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Type, err)
	}

	return encoder.Close()
}
