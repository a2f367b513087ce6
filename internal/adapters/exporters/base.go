// Package exporters provides implementations for writing conversion outputs in various formats.
package exporters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

// Formats lists the names accepted by New.
var Formats = []string{jsonFormat, yamlFormat, pdfFormat, docxFormat, adfFormat}

// New returns the exporter for the named format.
func New(format string) (domain.Exporter, error) {
	switch strings.ToLower(format) {
	case jsonFormat:
		return NewJSONExporter(), nil
	case yamlFormat, "yml":
		return NewYAMLExporter(), nil
	case pdfFormat:
		return NewPDFExporter(), nil
	case docxFormat:
		return NewDocxExporter(), nil
	case adfFormat, "adf":
		return NewADFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// FileName returns the file name an output is written to, for example
// "library-api.collection.json".
func FileName(out domain.Output, exp domain.Exporter) string {
	name := slug.Make(outputName(out))
	if name == "" {
		name = "output"
	}

	return fmt.Sprintf("%s.%s.%s", name, out.Type, exp.Extension())
}

// outputName returns the name of the document carried by out.
func outputName(out domain.Output) string {
	switch data := out.Data.(type) {
	case *domain.Collection:
		return data.Name
	case *domain.Environment:
		// The environment is named after its collection.
		return strings.TrimSuffix(data.Name, "'s Environment")
	default:
		return out.Type
	}
}

// formatMethod returns a styled method string.
func formatMethod(method string) string {
	return strings.ToUpper(method)
}

// formatHeaders splits the "Name: value" lines of a request header block.
func formatHeaders(raw string) []string {
	var headers []string

	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			headers = append(headers, line)
		}
	}

	return headers
}

// formatParameters returns one "name" or "name: value" entry per form field.
func formatParameters(data []map[string]string) []string {
	var params []string

	for _, field := range data {
		keys := make([]string, 0, len(field))
		for k := range field {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if field[k] == "" {
				params = append(params, k)
			} else {
				params = append(params, k+": "+field[k])
			}
		}
	}

	return params
}

// splitHeader splits "Name: value" into its name and value.
func splitHeader(header string) (string, string) {
	name, value, _ := strings.Cut(header, ":")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}

// plainText returns the text content of an HTML fragment with entities decoded.
func plainText(s string) string {
	var result strings.Builder

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			text := strings.ReplaceAll(result.String(), "\n\n", "\n")
			return strings.TrimSpace(text)
		case html.TextToken:
			result.Write(z.Text())
		}
	}
}
