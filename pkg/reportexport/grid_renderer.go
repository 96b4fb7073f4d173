package reportexport

import (
	"bytes"
	"fmt"
	"math"
	"regexp"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Shared layout constants, in millimetres unless noted.
const (
	HeaderHeight      = 28.0
	RowHeight         = 8.0
	ImageRowHeight    = 18.0
	headerRowHeight   = 9.0
	summaryBandHeight = 10.0
	footerHeight      = 8.0
	bodyFontSize      = 7.0
	headerFontSize    = 8.0
)

// gridSize makes one grid unit equal one millimetre of content width.
const gridSize = int(ContentWidth)

var pageObjectPattern = regexp.MustCompile(`/Type\s*/Page[^s]`)

type gridRenderer struct{}

// NewGridRenderer returns the primary layout engine, built on maroto's grid.
func NewGridRenderer() TableRenderer {
	return &gridRenderer{}
}

func (g *gridRenderer) Name() string {
	return "grid"
}

// Available requires every column to get at least one whole grid unit.
func (g *gridRenderer) Available(t *Table) error {
	sizes := gridSizes(t)
	total := 0
	for i, s := range sizes {
		if s < 1 {
			return fmt.Errorf("%w: column %d is narrower than one grid unit", ErrLayoutUnavailable, i)
		}
		total += s
	}
	if total > gridSize {
		return fmt.Errorf("%w: %d grid units exceed %d", ErrLayoutUnavailable, total, gridSize)
	}
	return nil
}

// gridSizes returns whole-millimetre column sizes, image column first.
func gridSizes(t *Table) []int {
	sizes := make([]int, 0, len(t.Widths)+1)
	if t.HasImages() {
		sizes = append(sizes, int(math.Floor(t.ImageWidth)))
	}
	for _, w := range t.Widths {
		sizes = append(sizes, int(math.Floor(w)))
	}
	return sizes
}

func (g *gridRenderer) Render(t *Table) (out []byte, pages int, err error) {
	// maroto reports some layout failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLayoutUnavailable, r)
		}
	}()

	cfg := config.NewBuilder().
		WithMaxGridSize(gridSize).
		WithLeftMargin(PageMargin).
		WithTopMargin(PageMargin).
		WithRightMargin(PageMargin).
		WithBottomMargin(PageMargin).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    headerFontSize,
			Color:   marotoColor(colorMuted),
		}).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(g.footer(t)); err != nil {
		return nil, 0, err
	}

	d := &gridDoc{t: t, sizes: gridSizes(t), fit: newTextFitter()}
	plan := planPages(t)
	sheets := make([]core.Page, 0, len(plan.pages)+1)
	for n, span := range plan.pages {
		var rows []core.Row
		if n == 0 {
			rows = append(rows, d.banner()...)
		}
		rows = append(rows, d.headerRow())
		for i := span[0]; i < span[1]; i++ {
			rows = append(rows, d.dataRow(i))
		}
		if n == len(plan.pages)-1 && !plan.summaryBreak {
			rows = append(rows, row.New(summaryGap))
			rows = append(rows, d.summary()...)
		}
		sheets = append(sheets, page.New().Add(rows...))
	}
	if plan.summaryBreak {
		sheets = append(sheets, page.New().Add(d.summary()...))
	}
	m.AddPages(sheets...)

	doc, err := m.Generate()
	if err != nil {
		return nil, 0, err
	}
	data := doc.GetBytes()
	return data, countPages(data), nil
}

// gridDoc carries the per-render state of one grid document.
type gridDoc struct {
	t     *Table
	sizes []int
	fit   *textFitter
}

func (d *gridDoc) banner() []core.Row {
	t := d.t
	primary := &props.Cell{BackgroundColor: marotoColor(t.Theme.Primary)}
	white := marotoColor(colorWhite)

	return []core.Row{
		row.New(10).Add(
			text.NewCol(gridSize/2, brandMark, props.Text{Size: 16, Style: fontstyle.Bold, Color: white, Top: 2, Left: 4}),
			text.NewCol(gridSize-gridSize/2, t.GeneratedAt.Format(timestampLayout), props.Text{Size: 8, Color: white, Align: align.Right, Top: 4, Right: 4}),
		).WithStyle(primary),
		row.New(9).Add(
			text.NewCol(gridSize, t.Title, props.Text{Size: 12, Style: fontstyle.Bold, Color: white, Left: 4, Top: 1}),
		).WithStyle(primary),
		row.New(9).Add(
			text.NewCol(gridSize*2/3, d.fit.fit(t.Subtitle, float64(gridSize*2/3)-2, 9, false), props.Text{Size: 9, Color: white, Left: 4, Top: 1}),
			text.NewCol(gridSize-gridSize*2/3, fmt.Sprintf("Total Records: %d", t.RowCount()), props.Text{Size: 9, Style: fontstyle.Bold, Color: white, Align: align.Right, Right: 4, Top: 1}),
		).WithStyle(primary),
		row.New(bannerGap),
	}
}

func (d *gridDoc) headerRow() core.Row {
	t := d.t
	style := &props.Cell{BackgroundColor: marotoColor(t.Theme.Primary)}
	textStyle := props.Text{Size: headerFontSize, Style: fontstyle.Bold, Color: marotoColor(colorWhite), Align: align.Center, Top: 2.5}

	cols := make([]core.Col, 0, len(d.sizes))
	offset := 0
	if t.HasImages() {
		cols = append(cols, text.NewCol(d.sizes[0], "Image", textStyle).WithStyle(style))
		offset = 1
	}
	for i, h := range t.Headers {
		size := d.sizes[i+offset]
		cols = append(cols, text.NewCol(size, d.fit.fit(h, float64(size), headerFontSize, true), textStyle).WithStyle(style))
	}
	return row.New(headerRowHeight).Add(cols...)
}

func (d *gridDoc) dataRow(index int) core.Row {
	t := d.t
	cellStyle := &props.Cell{BorderType: border.Bottom, BorderColor: marotoColor(colorGrid)}
	if index%2 == 1 {
		cellStyle.BackgroundColor = marotoColor(colorStripe)
	}

	height := t.rowHeight()
	cols := make([]core.Col, 0, len(d.sizes))
	offset := 0
	if t.HasImages() {
		offset = 1
		cols = append(cols, imageCol(d.sizes[0], t.Images[index], cellStyle))
	}
	for i, c := range t.Rows[index] {
		size := d.sizes[i+offset]
		value := d.fit.fit(c.Text, float64(size), bodyFontSize, c.Style.Bold)
		cols = append(cols, text.NewCol(size, value, cellTextProps(c.Style, height)).WithStyle(cellStyle))
	}
	return row.New(height).Add(cols...)
}

func imageCol(size int, img *Image, style *props.Cell) core.Col {
	if img == nil {
		return text.NewCol(size, "No Image", props.Text{Size: 6, Color: marotoColor(colorMuted), Align: align.Center, Top: 7}).
			WithStyle(&props.Cell{BackgroundColor: marotoColor(colorGrid), BorderType: border.Full, BorderColor: marotoColor(colorStripe)})
	}
	ext := extension.Png
	if img.Type == "jpg" {
		ext = extension.Jpg
	}
	return image.NewFromBytesCol(size, img.Data, ext, props.Rect{Center: true, Percent: 85}).WithStyle(style)
}

// summary is one accent band per summary line.
func (d *gridDoc) summary() []core.Row {
	style := &props.Cell{BackgroundColor: marotoColor(d.t.Theme.Accent)}
	lines := d.t.Summary.Lines()
	rows := make([]core.Row, len(lines))
	for i, msg := range lines {
		rows[i] = row.New(summaryBandHeight).Add(
			text.NewCol(gridSize, d.fit.fit(msg, ContentWidth-6, 9, true), props.Text{
				Size: 9, Style: fontstyle.Bold, Color: marotoColor(colorBrandDark), Left: 4, Top: 3,
			}),
		).WithStyle(style)
	}
	return rows
}

func (g *gridRenderer) footer(t *Table) core.Row {
	return row.New(footerHeight).Add(
		col.New(gridSize).Add(
			line.New(props.Line{Color: marotoColor(colorGrid)}),
			text.New(fmt.Sprintf("%s | Generated: %s", brandMark, t.GeneratedAt.Format(timestampLayout)), props.Text{
				Size: 7, Color: marotoColor(colorMuted), Top: 2,
			}),
		),
	)
}

func cellTextProps(s CellStyle, rowHeight float64) props.Text {
	p := props.Text{
		Size:  bodyFontSize,
		Color: marotoColor(s.Color),
		Top:   (rowHeight - 3) / 2,
		Left:  1,
		Right: 1,
	}
	if s.Bold {
		p.Style = fontstyle.Bold
	}
	switch s.Align {
	case AlignCenter:
		p.Align = align.Center
	case AlignRight:
		p.Align = align.Right
	default:
		p.Align = align.Left
	}
	return p
}

func marotoColor(c RGB) *props.Color {
	return &props.Color{Red: c.R, Green: c.G, Blue: c.B}
}

// countPages counts page objects in a finished PDF.
func countPages(data []byte) int {
	n := len(pageObjectPattern.FindAll(data, -1))
	if n == 0 && bytes.HasPrefix(data, []byte("%PDF")) {
		return 1
	}
	return n
}
