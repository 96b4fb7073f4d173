package reportexport

import "github.com/jung-kurt/gofpdf"

const (
	bannerGap  = 4.0
	summaryGap = 4.0
)

// pagePlan is where a table breaks across pages. Both layout engines follow
// it, so a table paginates the same way whichever one draws it.
type pagePlan struct {
	// pages holds the [start, end) data row range of every page.
	pages [][2]int
	// summaryBreak moves the closing summary onto a page of its own.
	summaryBreak bool
}

func (t *Table) rowHeight() float64 {
	if t.HasImages() {
		return ImageRowHeight
	}
	return RowHeight
}

func (t *Table) summaryHeight() float64 {
	return summaryBandHeight * float64(len(t.Summary.Lines()))
}

// planPages starts page one below the banner and header band, every later
// page below a repeated header band, and breaks before any row that would
// start past PageBreakY.
func planPages(t *Table) pagePlan {
	var plan pagePlan
	rowHeight := t.rowHeight()
	y := PageMargin + HeaderHeight + bannerGap + headerRowHeight
	start := 0
	for i := range t.Rows {
		if y+rowHeight > PageBreakY && i > start {
			plan.pages = append(plan.pages, [2]int{start, i})
			start = i
			y = PageMargin + headerRowHeight
		}
		y += rowHeight
	}
	plan.pages = append(plan.pages, [2]int{start, len(t.Rows)})
	plan.summaryBreak = y+summaryGap+t.summaryHeight() > PageBreakY
	return plan
}

// fitText shortens s with an ellipsis until measure(s) is below max.
func fitText(s string, max float64, measure func(string) float64) string {
	if measure(s) < max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && measure(string(r)+ellipsis) >= max {
		r = r[:len(r)-1]
	}
	return string(r) + ellipsis
}

// textFitter measures with the core Helvetica metrics, which are the ones
// maroto's default Arial resolves to.
type textFitter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newTextFitter() *textFitter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &textFitter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// fit shortens s to a cell of width millimetres with one millimetre of
// padding on each side.
func (f *textFitter) fit(s string, width, size float64, bold bool) string {
	style := ""
	if bold {
		style = "B"
	}
	f.pdf.SetFont(fontFamily, style, size)
	return fitText(s, width-2, func(v string) float64 {
		return f.pdf.GetStringWidth(f.tr(v))
	})
}
