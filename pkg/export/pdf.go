package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/preview"
)

// Compile-time interface check for PDFExporter.
var _ Exporter = (*PDFExporter)(nil)

// Font sizes in points per heading level, index 0 unused.
var headingSizes = [7]float64{0, 20, 17, 14.5, 12.5, 11.5, 11}

const (
	bodyFontSize = 11
	codeFontSize = 9
	lineHeight   = 5.5
	codeLineH    = 4.5
)

// PDFExporter renders a document to PDF through gofpdf. Layout is
// deliberately simple: one column, body text in Helvetica, code in
// Courier on a shaded background.
type PDFExporter struct {
	opts Options
}

// NewPDFExporter creates a PDF exporter with the given options.
func NewPDFExporter(opts Options) *PDFExporter {
	return &PDFExporter{opts: opts}
}

// Export implements Exporter.
func (e *PDFExporter) Export(ctx context.Context, doc *Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	pdf := gofpdf.New("P", "mm", e.opts.effectivePageSize(), "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	for i := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export cancelled: %w", err)
		}
		e.writeBlock(pdf, &doc.Blocks[i])
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (e *PDFExporter) writeBlock(pdf *gofpdf.Fpdf, blk *preview.Block) {
	switch blk.Kind {
	case mddoc.NodeHeading:
		level := blk.Level
		if level < 1 || level > 6 {
			level = 1
		}
		pdf.SetFont("Helvetica", "B", headingSizes[level])
		pdf.MultiCell(0, lineHeight+float64(7-level)*0.5, blk.Text, "", "L", false)
		pdf.Ln(2)

	case mddoc.NodeParagraph:
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.MultiCell(0, lineHeight, blk.Text, "", "L", false)
		pdf.Ln(2)

	case mddoc.NodeBlockQuote:
		pdf.SetFont("Helvetica", "I", bodyFontSize)
		pdf.SetTextColor(90, 90, 90)
		left, _, _, _ := pdf.GetMargins()
		pdf.SetLeftMargin(left + 6)
		pdf.MultiCell(0, lineHeight, blk.Text, "", "L", false)
		pdf.SetLeftMargin(left)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

	case mddoc.NodeCodeBlock:
		e.writeCode(pdf, blk.Code)

	case mddoc.NodeList:
		e.writeList(pdf, blk)

	case mddoc.NodeTable:
		e.writeTable(pdf, blk)

	case mddoc.NodeThematicBreak:
		pdf.Ln(2)
		x := pdf.GetX()
		y := pdf.GetY()
		pageW, _ := pdf.GetPageSize()
		_, rightM, _, _ := pdf.GetMargins()
		pdf.SetDrawColor(150, 150, 150)
		pdf.Line(x, y, pageW-rightM, y)
		pdf.Ln(4)
	}
}

func (e *PDFExporter) writeCode(pdf *gofpdf.Fpdf, code string) {
	indent := strings.Repeat(" ", e.opts.effectiveTabSize())
	code = strings.ReplaceAll(code, "\t", indent)
	code = strings.TrimRight(code, "\n")

	pdf.SetFont("Courier", "", codeFontSize)
	pdf.SetFillColor(245, 245, 245)
	pdf.MultiCell(0, codeLineH, code, "", "L", true)
	pdf.Ln(2)
}

func (e *PDFExporter) writeList(pdf *gofpdf.Fpdf, blk *preview.Block) {
	pdf.SetFont("Helvetica", "", bodyFontSize)
	left, _, _, _ := pdf.GetMargins()
	pdf.SetLeftMargin(left + 5)
	for i, item := range blk.Items {
		marker := "- "
		if blk.Ordered {
			marker = fmt.Sprintf("%d. ", blk.Start+i)
		}
		pdf.MultiCell(0, lineHeight, marker+item, "", "L", false)
	}
	pdf.SetLeftMargin(left)
	pdf.Ln(2)
}

func (e *PDFExporter) writeTable(pdf *gofpdf.Fpdf, blk *preview.Block) {
	cols := len(blk.Header)
	for _, row := range blk.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	leftM, rightM, _, _ := pdf.GetMargins()
	colW := (pageW - leftM - rightM) / float64(cols)

	if len(blk.Header) > 0 {
		pdf.SetFont("Helvetica", "B", bodyFontSize-1)
		e.writeRow(pdf, blk.Header, cols, colW, true)
	}
	pdf.SetFont("Helvetica", "", bodyFontSize-1)
	for _, row := range blk.Rows {
		e.writeRow(pdf, row, cols, colW, false)
	}
	pdf.Ln(2)
}

func (e *PDFExporter) writeRow(pdf *gofpdf.Fpdf, cells []string, cols int, colW float64, fill bool) {
	pdf.SetFillColor(235, 235, 235)
	for i := range cols {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		pdf.CellFormat(colW, lineHeight+1, text, "1", 0, "L", fill, 0, "")
	}
	pdf.Ln(-1)
}
