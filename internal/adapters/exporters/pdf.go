package exporters

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

const (
	pdfFormat      = "pdf"
	pdfPageWidth   = 190.0
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 10.0
	pdfMarginRight = 10.0
	pdfLineHeight  = 5.0
)

var methodColors = map[string][3]int{
	"GET":     {97, 175, 254},  // Blue
	"POST":    {73, 204, 144},  // Green
	"PUT":     {252, 161, 48},  // Orange
	"DELETE":  {249, 62, 62},   // Red
	"PATCH":   {80, 227, 194},  // Teal
	"HEAD":    {144, 97, 249},  // Purple
	"OPTIONS": {128, 128, 128}, // Gray
}

// PDFExporter renders outputs as a printable PDF reference.
// An exporter must not be shared by concurrent Export calls.
type PDFExporter struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	tocItems []tocItem
}

type tocItem struct {
	title  string
	level  int
	linkID int
}

// NewPDFExporter creates a new PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Format returns the output format name.
func (e *PDFExporter) Format() string {
	return pdfFormat
}

// Extension returns the file extension of the format.
func (e *PDFExporter) Extension() string {
	return pdfFormat
}

// Export renders the document of out as PDF.
func (e *PDFExporter) Export(out domain.Output, output io.Writer) error {
	ref, err := newReference(out)
	if err != nil {
		return err
	}

	e.pdf = gofpdf.New("P", "mm", "A4", "")
	e.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	e.pdf.SetDrawColor(180, 180, 180) // Light gray for all borders
	e.pdf.SetTitle(ref.title, true)
	e.tr = e.pdf.UnicodeTranslatorFromDescriptor("")
	e.tocItems = nil

	e.collectTOC(ref)
	e.addTitlePage(ref)
	e.addTableOfContents()
	e.addContent(ref)

	if err := e.pdf.Output(output); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	return nil
}

func (e *PDFExporter) collectTOC(ref *reference) {
	if len(ref.variables) > 0 {
		e.tocItems = append(e.tocItems, tocItem{title: "Variables", level: 1, linkID: e.pdf.AddLink()})
	}

	for _, s := range ref.sections {
		e.tocItems = append(e.tocItems, tocItem{title: s.title, level: 1, linkID: e.pdf.AddLink()})

		for _, req := range s.requests {
			title := fmt.Sprintf("%s %s", formatMethod(req.Method), req.Name)
			e.tocItems = append(e.tocItems, tocItem{title: title, level: 2, linkID: e.pdf.AddLink()})
		}
	}
}

func (e *PDFExporter) addTitlePage(ref *reference) {
	e.pdf.AddPage()

	e.pdf.SetFont("Arial", "B", 28)
	e.pdf.Ln(40)
	e.pdf.CellFormat(pdfPageWidth, 15, e.tr(ref.title), "", 1, "C", false, 0, "")
	e.pdf.Ln(5)

	e.pdf.SetFont("Arial", "", 14)
	e.pdf.SetTextColor(100, 100, 100)
	e.pdf.CellFormat(pdfPageWidth, 8, ref.subtitle, "", 1, "C", false, 0, "")
	e.pdf.SetTextColor(0, 0, 0)
	e.pdf.Ln(20)

	if ref.description != "" {
		e.pdf.SetFont("Arial", "", 11)
		e.pdf.MultiCell(pdfPageWidth, 6, e.tr(plainText(ref.description)), "", "C", false)
	}

	e.pdf.Ln(30)

	e.pdf.SetFont("Arial", "", 10)
	e.pdf.SetTextColor(128, 128, 128)
	e.pdf.CellFormat(pdfPageWidth, 6, "Converted from RAML", "", 1, "C", false, 0, "")
	e.pdf.SetTextColor(0, 0, 0)
}

func (e *PDFExporter) addTableOfContents() {
	if len(e.tocItems) == 0 {
		return
	}

	e.pdf.AddPage()

	e.pdf.SetFont("Arial", "B", 20)
	e.pdf.CellFormat(pdfPageWidth, 10, "Table of Contents", "", 1, "", false, 0, "")
	e.pdf.Ln(8)

	for _, item := range e.tocItems {
		indent := float64(item.level-1) * 8

		if item.level == 1 {
			e.pdf.SetFont("Arial", "B", 12)
		} else {
			e.pdf.SetFont("Arial", "", 9)
		}

		e.pdf.SetX(pdfMarginLeft + indent)
		title := item.title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		e.pdf.CellFormat(pdfPageWidth-indent, pdfLineHeight, e.tr(title), "", 1, "", false, item.linkID, "")
	}
}

func (e *PDFExporter) addContent(ref *reference) {
	tocIndex := 0

	if len(ref.variables) > 0 {
		e.pdf.AddPage()
		e.setLinkDest(tocIndex)
		tocIndex++

		e.addSectionHeader("Variables")
		e.addVariableTable(ref.variables)
	}

	for _, s := range ref.sections {
		e.pdf.AddPage()
		e.setLinkDest(tocIndex)
		tocIndex++

		e.pdf.SetFont("Arial", "B", 14)
		e.pdf.SetFillColor(240, 240, 240)
		e.pdf.CellFormat(pdfPageWidth, 8, e.tr(s.title), "", 1, "", true, 0, "")
		e.pdf.Ln(4)

		if desc := plainText(s.description); desc != "" {
			e.pdf.SetFont("Arial", "", 10)
			e.pdf.MultiCell(pdfPageWidth, 5, e.tr(desc), "", "", false)
			e.pdf.Ln(4)
		}

		e.addRequestsSummary(s.requests, tocIndex)
		e.pdf.Ln(6)

		for _, req := range s.requests {
			e.checkPageBreak(40)
			e.setLinkDest(tocIndex)
			tocIndex++

			e.addRequest(req)
		}
	}
}

func (e *PDFExporter) setLinkDest(tocIndex int) {
	if tocIndex < len(e.tocItems) {
		e.pdf.SetLink(e.tocItems[tocIndex].linkID, -1, -1)
	}
}

func (e *PDFExporter) addSectionHeader(title string) {
	e.pdf.SetFont("Arial", "B", 18)
	e.pdf.CellFormat(pdfPageWidth, 10, title, "", 1, "", false, 0, "")
	e.pdf.Ln(4)
}

func (e *PDFExporter) addSubHeader(title string) {
	e.pdf.SetFont("Arial", "B", 10)
	e.pdf.SetTextColor(60, 60, 60)
	e.pdf.CellFormat(pdfPageWidth, 6, title, "", 1, "", false, 0, "")
	e.pdf.SetTextColor(0, 0, 0)
}

func (e *PDFExporter) addRequest(req domain.Request) {
	method := formatMethod(req.Method)

	// Method badge
	e.pdf.SetFont("Arial", "B", 11)
	color, ok := methodColors[method]
	if !ok {
		color = [3]int{128, 128, 128}
	}
	e.pdf.SetFillColor(color[0], color[1], color[2])
	e.pdf.SetTextColor(255, 255, 255)
	methodWidth := float64(len(method)*3) + 8
	e.pdf.CellFormat(methodWidth, 7, method, "", 0, "C", true, 0, "")

	e.pdf.SetTextColor(0, 0, 0)
	e.pdf.CellFormat(pdfPageWidth-methodWidth, 7, e.tr(" "+req.Name), "", 1, "", false, 0, "")
	e.pdf.Ln(2)

	e.pdf.SetFont("Courier", "", 9)
	e.pdf.SetTextColor(0, 102, 204)
	e.pdf.MultiCell(pdfPageWidth, 4, e.tr(req.URL), "", "", false)
	e.pdf.SetTextColor(0, 0, 0)
	e.pdf.Ln(2)

	if desc := plainText(req.Description); desc != "" {
		e.pdf.SetFont("Arial", "", 9)
		e.pdf.MultiCell(pdfPageWidth, 4, e.tr(desc), "", "", false)
		e.pdf.Ln(2)
	}

	if headers := formatHeaders(req.Headers); len(headers) > 0 {
		e.addSubHeader("Headers")

		rows := make([][]string, 0, len(headers))
		for _, h := range headers {
			name, value := splitHeader(h)
			rows = append(rows, []string{name, value})
		}
		e.addTable([]float64{60, 130}, []string{"Name", "Example"}, rows)
	}

	if params := formatParameters(req.Data); len(params) > 0 {
		e.addSubHeader(fmt.Sprintf("Form Data (%s)", req.DataMode))

		rows := make([][]string, 0, len(params))
		for _, p := range params {
			name, value := splitHeader(p)
			rows = append(rows, []string{name, value})
		}
		e.addTable([]float64{60, 130}, []string{"Field", "Value"}, rows)
	}

	if req.RawModeData != "" {
		e.addSubHeader("Body")
		e.addExample(req.RawModeData)
	}

	// Separator
	e.pdf.Ln(2)
	e.pdf.SetDrawColor(220, 220, 220)
	e.pdf.Line(pdfMarginLeft, e.pdf.GetY(), pdfMarginLeft+pdfPageWidth, e.pdf.GetY())
	e.pdf.SetDrawColor(180, 180, 180) // Reset to standard light gray
	e.pdf.Ln(6)
}

func (e *PDFExporter) addVariableTable(vars []domain.EnvVar) {
	rows := make([][]string, 0, len(vars))
	for _, v := range vars {
		enabled := "No"
		if v.Enabled {
			enabled = "Yes"
		}
		rows = append(rows, []string{v.Key, v.Type, v.Name, enabled})
	}

	e.addTable([]float64{50, 30, 90, 20}, []string{"Key", "Type", "Name", "Enabled"}, rows)
}

func (e *PDFExporter) addRequestsSummary(requests []domain.Request, startTocIndex int) {
	if len(requests) == 0 {
		return
	}

	e.pdf.SetFont("Arial", "B", 11)
	e.pdf.CellFormat(pdfPageWidth, 6, "Requests in this section", "", 1, "", false, 0, "")
	e.pdf.Ln(2)

	colWidths := []float64{20, 60, 110}
	e.addTableHeader(colWidths, []string{"Method", "Name", "URL"})

	e.pdf.SetFont("Arial", "", 9)
	for i, req := range requests {
		var linkIDs []int
		if tocIndex := startTocIndex + i; tocIndex < len(e.tocItems) {
			linkID := e.tocItems[tocIndex].linkID
			linkIDs = []int{linkID, linkID, linkID}
		}

		contents := []string{formatMethod(req.Method), req.Name, req.URL}
		e.addTableRow(colWidths, contents, []string{"C", "L", "L"}, linkIDs)
	}
}

func (e *PDFExporter) addTable(colWidths []float64, headers []string, rows [][]string) {
	e.addTableHeader(colWidths, headers)

	e.pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		e.addTableRow(colWidths, row, nil, nil)
	}
	e.pdf.Ln(3)
}

func (e *PDFExporter) addTableHeader(colWidths []float64, headers []string) {
	e.pdf.SetFont("Arial", "B", 8)
	e.pdf.SetFillColor(245, 245, 245)

	for i, header := range headers {
		e.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	e.pdf.Ln(-1)
}

func (e *PDFExporter) addTableRow(colWidths []float64, contents []string, aligns []string, linkIDs []int) {
	for i := range contents {
		contents[i] = e.tr(contents[i])
	}

	// Row height follows the cell that wraps the most
	maxLines := 1
	for i, content := range contents {
		if lines := e.pdf.SplitLines([]byte(content), colWidths[i]); len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * pdfLineHeight

	e.checkPageBreak(rowHeight)

	startX := e.pdf.GetX()
	startY := e.pdf.GetY()

	for i, content := range contents {
		width := colWidths[i]

		align := ""
		if len(aligns) > i {
			align = aligns[i]
		}

		linkID := 0
		if len(linkIDs) > i {
			linkID = linkIDs[i]
		}

		if linkID > 0 {
			e.pdf.SetTextColor(0, 102, 204)
		}

		e.pdf.SetXY(startX, startY)
		e.pdf.MultiCell(width, pdfLineHeight, content, "0", align, false)
		if linkID > 0 {
			e.pdf.Link(startX, startY, width, rowHeight, linkID)
			e.pdf.SetTextColor(0, 0, 0)
		}

		e.pdf.Rect(startX, startY, width, rowHeight, "D")

		startX += width
	}

	e.pdf.SetXY(pdfMarginLeft, startY+rowHeight)
}

func (e *PDFExporter) addExample(content string) {
	e.checkPageBreak(30)

	e.pdf.SetFont("Courier", "", 8)
	e.pdf.SetFillColor(250, 250, 250)
	e.pdf.MultiCell(pdfPageWidth, 4, e.tr(content), "1", "", true)
	e.pdf.Ln(4)
}

func (e *PDFExporter) checkPageBreak(height float64) {
	_, pageHeight := e.pdf.GetPageSize()
	_, _, _, bottomMargin := e.pdf.GetMargins()

	if e.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		e.pdf.AddPage()
	}
}
