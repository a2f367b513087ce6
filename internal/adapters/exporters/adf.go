package exporters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const (
	adfFormat    = "confluence"
	adfExtension = "adf.json"
)

// ADFExporter renders outputs as Atlassian Document Format (ADF) for Confluence.
type ADFExporter struct{}

// NewADFExporter creates a new ADF exporter.
func NewADFExporter() *ADFExporter {
	return &ADFExporter{}
}

// Format returns the output format name.
func (e *ADFExporter) Format() string {
	return adfFormat
}

// Extension returns the file extension of the format.
func (e *ADFExporter) Extension() string {
	return adfExtension
}

// ADF node types.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Attrs   *adfAttrs `json:"attrs,omitempty"`
	Content []adfNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level    int    `json:"level,omitempty"`
	Language string `json:"language,omitempty"`
}

type adfMark struct {
	Type string `json:"type"`
}

// Export renders the document of out as ADF JSON.
func (e *ADFExporter) Export(out domain.Output, output io.Writer) error {
	ref, err := newReference(out)
	if err != nil {
		return err
	}

	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{},
	}

	adf.Content = append(adf.Content, e.heading(ref.title, 1))
	adf.Content = append(adf.Content, e.paragraph(ref.subtitle))

	if desc := plainText(ref.description); desc != "" {
		adf.Content = append(adf.Content, e.paragraph(desc))
	}

	if len(ref.variables) > 0 {
		adf.Content = append(adf.Content, e.heading("Variables", 2))
		adf.Content = append(adf.Content, e.variableList(ref.variables))
	}

	for _, s := range ref.sections {
		adf.Content = append(adf.Content, e.heading(s.title, 2))

		if desc := plainText(s.description); desc != "" {
			adf.Content = append(adf.Content, e.paragraph(desc))
		}

		for _, req := range s.requests {
			adf.Content = append(adf.Content, e.requestNodes(req)...)
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func (e *ADFExporter) heading(text string, level int) adfNode {
	return adfNode{
		Type:  "heading",
		Attrs: &adfAttrs{Level: level},
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (e *ADFExporter) paragraph(text string) adfNode {
	return adfNode{
		Type: "paragraph",
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (e *ADFExporter) codeText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "code"},
		},
	}
}

func (e *ADFExporter) codeBlock(text string) adfNode {
	return adfNode{
		Type:  "codeBlock",
		Attrs: &adfAttrs{Language: "json"},
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (e *ADFExporter) bulletList(items []adfNode) adfNode {
	list := adfNode{Type: "bulletList"}

	for _, item := range items {
		list.Content = append(list.Content, adfNode{
			Type: "listItem",
			Content: []adfNode{
				item,
			},
		})
	}

	return list
}

func (e *ADFExporter) requestNodes(req domain.Request) []adfNode {
	var nodes []adfNode

	nodes = append(nodes, e.heading(fmt.Sprintf("%s %s", formatMethod(req.Method), req.Name), 3))
	nodes = append(nodes, adfNode{
		Type: "paragraph",
		Content: []adfNode{
			e.codeText(req.URL),
		},
	})

	if desc := plainText(req.Description); desc != "" {
		nodes = append(nodes, e.paragraph(desc))
	}

	if headers := formatHeaders(req.Headers); len(headers) > 0 {
		nodes = append(nodes, e.heading("Headers", 4))
		nodes = append(nodes, e.entryList(headers))
	}

	if params := formatParameters(req.Data); len(params) > 0 {
		nodes = append(nodes, e.heading(fmt.Sprintf("Form Data (%s)", req.DataMode), 4))
		nodes = append(nodes, e.entryList(params))
	}

	if req.RawModeData != "" {
		nodes = append(nodes, e.heading("Body", 4))
		nodes = append(nodes, e.codeBlock(req.RawModeData))
	}

	// Divider between requests
	nodes = append(nodes, adfNode{Type: "rule"})

	return nodes
}

// entryList renders "name: value" entries with the name in code style.
func (e *ADFExporter) entryList(entries []string) adfNode {
	items := make([]adfNode, 0, len(entries))

	for _, entry := range entries {
		name, value := splitHeader(entry)

		content := []adfNode{e.codeText(name)}
		if value != "" {
			content = append(content, adfNode{Type: "text", Text: ": " + value})
		}

		items = append(items, adfNode{Type: "paragraph", Content: content})
	}

	return e.bulletList(items)
}

func (e *ADFExporter) variableList(vars []domain.EnvVar) adfNode {
	items := make([]adfNode, 0, len(vars))

	for _, v := range vars {
		items = append(items, adfNode{
			Type: "paragraph",
			Content: []adfNode{
				e.codeText(v.Key),
				{Type: "text", Text: fmt.Sprintf(" (%s): %s", v.Type, v.Name)},
			},
		})
	}

	return e.bulletList(items)
}
