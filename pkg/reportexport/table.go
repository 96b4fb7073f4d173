package reportexport

import "time"

// imageColumnWidth is the thumbnail column used by the image variant.
const imageColumnWidth = 18.0

// Cell is a resolved, truncated and classified table cell.
type Cell struct {
	Text  string
	Style CellStyle
}

// Table is the layout-independent form of a document. Both layout engines
// draw from it, so they agree on text, widths and styles.
type Table struct {
	Title       string
	Subtitle    string
	Theme       Theme
	GeneratedAt time.Time

	Headers []string
	Types   []ColumnType
	Widths  []float64
	Rows    [][]Cell

	// ImageWidth is zero unless the request asked for thumbnails. Images[i]
	// is nil when row i has no usable image.
	ImageWidth float64
	Images     []*Image

	Summary Summary
}

// RowCount is the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// HasImages reports whether the table carries a thumbnail column.
func (t *Table) HasImages() bool {
	return t.ImageWidth > 0
}

// TotalWidth is the sum of all column widths, thumbnails included.
func (t *Table) TotalWidth() float64 {
	sum := t.ImageWidth
	for _, w := range t.Widths {
		sum += w
	}
	return sum
}

// BuildTable projects rows onto the declared columns and resolves every cell.
func BuildTable(req Request, generatedAt time.Time) *Table {
	theme := ThemeFor(req.Section)
	t := &Table{
		Title:       theme.Title,
		Subtitle:    req.Title,
		Theme:       theme,
		GeneratedAt: generatedAt,
		Headers:     make([]string, len(req.Columns)),
		Types:       make([]ColumnType, len(req.Columns)),
		Rows:        make([][]Cell, 0, len(req.Rows)),
	}
	for i, col := range req.Columns {
		t.Headers[i] = col.Header
		t.Types[i] = InferColumnType(col)
	}

	if req.ImageKey != "" {
		widths := ColumnWidths(t.Types, ContentWidth)
		all := fitWidths(append([]float64{imageColumnWidth}, widths...), ContentWidth)
		t.ImageWidth = all[0]
		t.Widths = all[1:]
		t.Images = make([]*Image, len(req.Rows))
	} else {
		t.Widths = ColumnWidths(t.Types, ContentWidth)
	}

	for _, row := range req.Rows {
		cells := make([]Cell, len(req.Columns))
		for i, col := range req.Columns {
			text := TruncateCell(CellText(row[col.Key]), t.Types[i])
			cells[i] = Cell{Text: text, Style: Classify(i, t.Types[i], text)}
		}
		t.Rows = append(t.Rows, cells)
	}
	t.Summary = Summarize(req, t.Types)
	return t
}
