package reportexport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PageBreakY is the lowest Y at which a data row may start.
const PageBreakY = PageHeight - 30

const fontFamily = "Helvetica"

type manualRenderer struct{}

// NewManualRenderer returns the fallback layout engine, which positions every
// cell itself with gofpdf and handles its own pagination.
func NewManualRenderer() TableRenderer {
	return &manualRenderer{}
}

func (r *manualRenderer) Name() string {
	return "manual"
}

func (r *manualRenderer) Available(t *Table) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("%w: no columns", ErrLayoutUnavailable)
	}
	if t.TotalWidth() > ContentWidth+0.01 {
		return fmt.Errorf("%w: table is %.1fmm wide", ErrLayoutUnavailable, t.TotalWidth())
	}
	return nil
}

type manualPage struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	t   *Table
}

func (r *manualRenderer) Render(t *Table) ([]byte, int, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("{nb}")
	p := &manualPage{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), t: t}
	pdf.SetFooterFunc(p.footer)

	rowHeight := t.rowHeight()
	plan := planPages(t)
	var y float64
	for n, span := range plan.pages {
		pdf.AddPage()
		if n == 0 {
			y = p.headerBand(p.banner())
		} else {
			y = p.headerBand(PageMargin)
		}
		for i := span[0]; i < span[1]; i++ {
			p.dataRow(y, rowHeight, i, t.Rows[i])
			y += rowHeight
		}
	}

	if plan.summaryBreak {
		pdf.AddPage()
		y = PageMargin
	} else {
		y += summaryGap
	}
	p.summary(y)

	if err := pdf.Error(); err != nil {
		return nil, 0, err
	}
	pages := pdf.PageNo()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}

func (p *manualPage) fill(c RGB) {
	p.pdf.SetFillColor(c.R, c.G, c.B)
}

func (p *manualPage) text(c RGB) {
	p.pdf.SetTextColor(c.R, c.G, c.B)
}

// banner draws the header block and returns the Y below it.
func (p *manualPage) banner() float64 {
	pdf, t := p.pdf, p.t
	x, y := PageMargin, PageMargin

	p.fill(t.Theme.Primary)
	pdf.Rect(x, y, ContentWidth, HeaderHeight, "F")
	p.text(colorWhite)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.SetXY(x+4, y+2)
	pdf.CellFormat(ContentWidth/2, 8, p.tr(brandMark), "", 0, "LM", false, 0, "")
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetXY(x+ContentWidth/2, y+2)
	pdf.CellFormat(ContentWidth/2-4, 8, p.tr(t.GeneratedAt.Format(timestampLayout)), "", 0, "RM", false, 0, "")

	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetXY(x+4, y+10)
	pdf.CellFormat(ContentWidth-8, 8, p.tr(t.Title), "", 0, "LM", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetXY(x+4, y+18)
	pdf.CellFormat(ContentWidth*2/3, 8, p.tr(p.fit(t.Subtitle, ContentWidth*2/3)), "", 0, "LM", false, 0, "")
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetXY(x+ContentWidth*2/3, y+18)
	pdf.CellFormat(ContentWidth/3-4, 8, fmt.Sprintf("Total Records: %d", t.RowCount()), "", 0, "RM", false, 0, "")

	return y + HeaderHeight + bannerGap
}

// headerBand draws the column headers at y and returns the Y below them.
func (p *manualPage) headerBand(y float64) float64 {
	pdf, t := p.pdf, p.t
	p.fill(t.Theme.Primary)
	pdf.Rect(PageMargin, y, t.TotalWidth(), headerRowHeight, "F")
	p.text(colorWhite)
	pdf.SetFont(fontFamily, "B", headerFontSize)

	x := PageMargin
	if t.HasImages() {
		pdf.SetXY(x, y)
		pdf.CellFormat(t.ImageWidth, headerRowHeight, "Image", "", 0, "CM", false, 0, "")
		x += t.ImageWidth
	}
	for i, h := range t.Headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(t.Widths[i], headerRowHeight, p.tr(p.fit(h, t.Widths[i])), "", 0, "CM", false, 0, "")
		x += t.Widths[i]
	}
	return y + headerRowHeight
}

func (p *manualPage) dataRow(y, height float64, index int, cells []Cell) {
	pdf, t := p.pdf, p.t
	if index%2 == 1 {
		p.fill(colorStripe)
		pdf.Rect(PageMargin, y, t.TotalWidth(), height, "F")
	}
	pdf.SetDrawColor(colorGrid.R, colorGrid.G, colorGrid.B)
	pdf.Line(PageMargin, y+height, PageMargin+t.TotalWidth(), y+height)

	x := PageMargin
	if t.HasImages() {
		p.image(x, y, t.ImageWidth, height, index)
		x += t.ImageWidth
	}
	for i, c := range cells {
		style := ""
		if c.Style.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, bodyFontSize)
		p.text(c.Style.Color)
		pdf.SetXY(x, y)
		pdf.CellFormat(t.Widths[i], height, p.tr(p.fit(c.Text, t.Widths[i])), "", 0, alignString(c.Style.Align), false, 0, "")
		x += t.Widths[i]
	}
}

func (p *manualPage) image(x, y, w, h float64, index int) {
	pdf := p.pdf
	img := p.t.Images[index]
	if img != nil {
		name := fmt.Sprintf("row-%d", index)
		opts := gofpdf.ImageOptions{ImageType: img.Type}
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		if pdf.Ok() && info != nil && info.Width() > 0 && info.Height() > 0 {
			boxW, boxH := w-2, h-2
			scale := boxW / info.Width()
			if s := boxH / info.Height(); s < scale {
				scale = s
			}
			iw, ih := info.Width()*scale, info.Height()*scale
			pdf.ImageOptions(name, x+(w-iw)/2, y+(h-ih)/2, iw, ih, false, opts, 0, "")
			return
		}
		// A broken image must not poison the rest of the document.
		pdf.ClearError()
	}

	p.fill(colorGrid)
	pdf.Rect(x+1, y+1, w-2, h-2, "F")
	pdf.SetFont(fontFamily, "", 6)
	p.text(colorMuted)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, "No Image", "", 0, "CM", false, 0, "")
}

func (p *manualPage) summary(y float64) {
	pdf, t := p.pdf, p.t
	lines := t.Summary.Lines()
	p.fill(t.Theme.Accent)
	pdf.Rect(PageMargin, y, ContentWidth, t.summaryHeight(), "F")
	pdf.SetFont(fontFamily, "B", 9)
	p.text(colorBrandDark)
	for i, line := range lines {
		pdf.SetXY(PageMargin+4, y+float64(i)*summaryBandHeight)
		pdf.CellFormat(ContentWidth-8, summaryBandHeight, p.tr(p.fit(line, ContentWidth-6)), "", 0, "LM", false, 0, "")
	}
}

func (p *manualPage) footer() {
	pdf, t := p.pdf, p.t
	y := PageHeight - PageMargin - footerHeight
	pdf.SetDrawColor(colorGrid.R, colorGrid.G, colorGrid.B)
	pdf.Line(PageMargin, y, PageMargin+ContentWidth, y)

	pdf.SetFont(fontFamily, "", 7)
	p.text(colorMuted)
	pdf.SetXY(PageMargin, y+1)
	pdf.CellFormat(ContentWidth/2, footerHeight-1, p.tr(fmt.Sprintf("%s | Generated: %s", brandMark, t.GeneratedAt.Format(timestampLayout))), "", 0, "LM", false, 0, "")
	pdf.SetXY(PageMargin+ContentWidth/2, y+1)
	pdf.CellFormat(ContentWidth/2, footerHeight-1, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "RM", false, 0, "")
}

// fit shortens s until it fits in width millimetres at the current font.
func (p *manualPage) fit(s string, width float64) string {
	return fitText(s, width-2, func(v string) float64 {
		return p.pdf.GetStringWidth(p.tr(v))
	})
}

func alignString(a Align) string {
	switch a {
	case AlignCenter:
		return "CM"
	case AlignRight:
		return "RM"
	default:
		return "LM"
	}
}
