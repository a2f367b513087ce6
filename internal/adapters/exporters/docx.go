package exporters

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const docxFormat = "docx"

// DocxExporter renders outputs as a Word (DOCX) reference.
type DocxExporter struct{}

// NewDocxExporter creates a new DOCX exporter.
func NewDocxExporter() *DocxExporter {
	return &DocxExporter{}
}

// Format returns the output format name.
func (e *DocxExporter) Format() string {
	return docxFormat
}

// Extension returns the file extension of the format.
func (e *DocxExporter) Extension() string {
	return docxFormat
}

// Export renders the document of out as DOCX.
func (e *DocxExporter) Export(out domain.Output, output io.Writer) error {
	ref, err := newReference(out)
	if err != nil {
		return err
	}

	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	e.addTitle(document, ref)
	e.addVariables(document, ref.variables)
	for _, s := range ref.sections {
		e.addSection(document, s)
	}

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (e *DocxExporter) addTitle(document *docx.RootDoc, ref *reference) {
	_, _ = document.AddHeading(ref.title, 0) // Level 0 = Title style
	document.AddParagraph(ref.subtitle)

	if desc := plainText(ref.description); desc != "" {
		document.AddParagraph(desc)
	}

	document.AddEmptyParagraph()
}

func (e *DocxExporter) addVariables(document *docx.RootDoc, vars []domain.EnvVar) {
	if len(vars) == 0 {
		return
	}

	_, _ = document.AddHeading("Variables", 1)

	for _, v := range vars {
		text := fmt.Sprintf("• %s (%s)", v.Key, v.Type)
		if v.Name != "" && v.Name != v.Key {
			text += ": " + v.Name
		}
		if !v.Enabled {
			text += " (disabled)"
		}

		document.AddParagraph(text)
	}

	document.AddEmptyParagraph()
}

func (e *DocxExporter) addSection(document *docx.RootDoc, s section) {
	_, _ = document.AddHeading(s.title, 1)

	if desc := plainText(s.description); desc != "" {
		document.AddParagraph(desc)
	}

	for _, req := range s.requests {
		e.addRequest(document, req)
	}
}

func (e *DocxExporter) addRequest(document *docx.RootDoc, req domain.Request) {
	_, _ = document.AddHeading(fmt.Sprintf("%s %s", formatMethod(req.Method), req.Name), 2)
	document.AddParagraph(req.URL)

	if desc := plainText(req.Description); desc != "" {
		document.AddParagraph(desc)
	}

	if headers := formatHeaders(req.Headers); len(headers) > 0 {
		_, _ = document.AddHeading("Headers", 3)

		for _, h := range headers {
			document.AddParagraph("• " + h)
		}
	}

	if params := formatParameters(req.Data); len(params) > 0 {
		_, _ = document.AddHeading(fmt.Sprintf("Form Data (%s)", req.DataMode), 3)

		for _, p := range params {
			document.AddParagraph("• " + p)
		}
	}

	if req.RawModeData != "" {
		_, _ = document.AddHeading("Body", 3)
		document.AddParagraph(req.RawModeData)
	}

	document.AddEmptyParagraph()
}
