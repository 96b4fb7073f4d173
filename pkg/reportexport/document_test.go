package reportexport

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func productRows() []Row {
	return []Row{
		{"id": "1", "name": "Fresh Tomatoes", "price": 1250, "stockQuantity": 100, "status": "In Stock"},
		{"id": "2", "name": "Green Apples", "price": 800, "stockQuantity": 5, "status": "Low Stock"},
		{"id": "3", "name": "Fresh Milk", "price": 450, "stockQuantity": 0, "status": "Out of Stock"},
	}
}

func statusKinds(tbl *Table) []CellKind {
	idx := -1
	for i, typ := range tbl.Types {
		if typ == TypeStatus {
			idx = i
		}
	}
	kinds := make([]CellKind, len(tbl.Rows))
	for i, row := range tbl.Rows {
		kinds[i] = row[idx].Style.Kind
	}
	return kinds
}

type failingRenderer struct {
	availableErr error
	renderErr    error
	calls        int
}

func (f *failingRenderer) Name() string { return "failing" }

func (f *failingRenderer) Available(*Table) error { return f.availableErr }

func (f *failingRenderer) Render(*Table) ([]byte, int, error) {
	f.calls++
	return nil, 0, f.renderErr
}

func TestRenderDocument(t *testing.T) {
	ctx := context.Background()
	req := Request{
		Rows:     productRows(),
		Title:    "Weekly Products",
		Columns:  ProductColumns(),
		Filename: "products",
		Section:  SectionProducts,
	}

	t.Run("ThreeProductsEndToEnd", func(t *testing.T) {
		exp := NewExporter(WithClock(func() time.Time { return fixedNow }))
		res, err := exp.RenderDocument(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "products.pdf", res.Filename)
		assert.Equal(t, ContentTypePDF, res.ContentType)
		assert.True(t, bytes.HasPrefix(res.Bytes, []byte("%PDF")))
		assert.Equal(t, "grid", res.Renderer)
		assert.GreaterOrEqual(t, res.Pages, 1)
		require.Equal(t, 3, res.Table.RowCount())
		assert.Equal(t, []CellKind{KindSuccess, KindWarning, KindError}, statusKinds(res.Table))
	})

	t.Run("ManualLayoutMatchesGridClassification", func(t *testing.T) {
		grid, err := NewExporter(WithClock(func() time.Time { return fixedNow })).RenderDocument(ctx, req)
		require.NoError(t, err)
		manual, err := NewExporter(WithLayout(LayoutManual), WithClock(func() time.Time { return fixedNow })).RenderDocument(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "manual", manual.Renderer)
		assert.True(t, bytes.HasPrefix(manual.Bytes, []byte("%PDF")))
		assert.Equal(t, grid.Table.Rows, manual.Table.Rows)
		assert.Equal(t, grid.Table.Widths, manual.Table.Widths)
	})

	t.Run("FallsBackWhenPrimaryFails", func(t *testing.T) {
		primary := &failingRenderer{renderErr: errors.New("engine crashed")}
		exp := NewExporter(WithRenderers(primary, NewManualRenderer()))

		res, err := exp.RenderDocument(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, "manual", res.Renderer)
	})

	t.Run("SkipsUnavailableRenderer", func(t *testing.T) {
		primary := &failingRenderer{availableErr: ErrLayoutUnavailable}
		exp := NewExporter(WithRenderers(primary, NewManualRenderer()))

		res, err := exp.RenderDocument(ctx, req)
		require.NoError(t, err)
		assert.Zero(t, primary.calls)
		assert.Equal(t, "manual", res.Renderer)
	})

	t.Run("AllRenderersFail", func(t *testing.T) {
		exp := NewExporter(WithRenderers(&failingRenderer{renderErr: errors.New("nope")}))

		_, err := exp.RenderDocument(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSerialization)
		assert.Contains(t, err.Error(), "PDF Export Failed")
		var exportErr *ExportError
		assert.True(t, errors.As(err, &exportErr))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		exp := NewExporter()
		_, err := exp.RenderDocument(ctx, Request{Columns: ProductColumns()})
		assert.ErrorIs(t, err, ErrEmptyInput)

		_, err = exp.RenderDocument(ctx, Request{Rows: productRows()})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("DuplicateColumnKeys", func(t *testing.T) {
		cols := []Column{{Header: "A", Key: "id"}, {Header: "B", Key: "id"}}
		_, err := NewExporter().RenderDocument(ctx, Request{Rows: productRows(), Columns: cols})
		assert.ErrorIs(t, err, ErrInvalidColumns)
	})

	t.Run("DefaultFilename", func(t *testing.T) {
		exp := NewExporter(WithClock(func() time.Time { return fixedNow }))
		res, err := exp.RenderDocument(ctx, Request{Rows: productRows(), Columns: ProductColumns(), Title: "Stock Report: June"})
		require.NoError(t, err)
		assert.Equal(t, "stock-report-june-2024-06-01.pdf", res.Filename)
	})
}

func TestManualRendererPaginates(t *testing.T) {
	rows := make([]Row, 100)
	for i := range rows {
		rows[i] = Row{"id": fmt.Sprint(i + 1), "name": fmt.Sprintf("Item %d", i+1), "status": "In Stock"}
	}
	req := Request{Rows: rows, Columns: []Column{{"ID", "id"}, {"Name", "name"}, {"Status", "status"}}}

	res, err := NewExporter(WithLayout(LayoutManual)).RenderDocument(context.Background(), req)
	require.NoError(t, err)
	// 27 rows fit under the banner on page one, 31 on each following page.
	assert.Equal(t, 4, res.Pages)
}

var pdfStreamPattern = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)

// pdfContent joins every stream of a PDF, inflating the compressed ones.
func pdfContent(t *testing.T, data []byte) string {
	t.Helper()
	var out strings.Builder
	for _, m := range pdfStreamPattern.FindAllSubmatch(data, -1) {
		raw := m[1]
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				raw = inflated
			}
			zr.Close()
		}
		out.Write(raw)
		out.WriteByte('\n')
	}
	return out.String()
}

func TestHeaderBandOnEveryPage(t *testing.T) {
	rows := make([]Row, 100)
	for i := range rows {
		rows[i] = Row{"id": fmt.Sprint(i + 1), "name": fmt.Sprintf("Item %d", i+1), "status": "In Stock"}
	}
	req := Request{Rows: rows, Columns: []Column{{"ID", "id"}, {"Zebraheader", "name"}, {"Status", "status"}}}

	for layout, renderer := range map[string]string{LayoutAuto: "grid", LayoutManual: "manual"} {
		t.Run(layout, func(t *testing.T) {
			res, err := NewExporter(WithLayout(layout)).RenderDocument(context.Background(), req)
			require.NoError(t, err)
			require.Equal(t, renderer, res.Renderer)
			assert.Equal(t, 4, res.Pages)
			assert.Equal(t, res.Pages, strings.Count(pdfContent(t, res.Bytes), "Zebraheader"))
		})
	}
}

func TestLongCellsFitTheirColumn(t *testing.T) {
	// Within the character budget of a default column but far wider than 30mm.
	wide := strings.Repeat("W", 30)
	req := Request{
		Rows:    []Row{{"id": "1", "notes": wide, "status": "In Stock"}},
		Columns: []Column{{"ID", "id"}, {"Notes", "notes"}, {"Status", "status"}},
	}

	for layout, renderer := range map[string]string{LayoutAuto: "grid", LayoutManual: "manual"} {
		t.Run(layout, func(t *testing.T) {
			res, err := NewExporter(WithLayout(layout)).RenderDocument(context.Background(), req)
			require.NoError(t, err)
			require.Equal(t, renderer, res.Renderer)
			assert.Equal(t, wide, res.Table.Rows[0][1].Text)

			content := pdfContent(t, res.Bytes)
			assert.Contains(t, content, "WWWW"+ellipsis)
			assert.NotContains(t, content, wide)
		})
	}
}

func TestDocumentSummary(t *testing.T) {
	rows := productRows()
	rows = append(rows, Row{"id": "4", "name": "Red Onions", "price": "LKR 1,000.50", "stockQuantity": 60, "status": "In Stock"})
	req := Request{Rows: rows, Columns: ProductColumns(), Section: SectionProducts, TotalField: "price", Currency: "LKR"}

	for _, layout := range []string{LayoutAuto, LayoutManual} {
		t.Run(layout, func(t *testing.T) {
			res, err := NewExporter(WithLayout(layout)).RenderDocument(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, Summary{
				Records: 4,
				Statuses: []StatusCount{
					{Label: "In Stock", Kind: KindSuccess, Count: 2},
					{Label: "Low Stock", Kind: KindWarning, Count: 1},
					{Label: "Out of Stock", Kind: KindError, Count: 1},
				},
				Total: "LKR 3500.50",
			}, res.Table.Summary)

			content := pdfContent(t, res.Bytes)
			assert.Contains(t, content, "Total Value: LKR 3500.50")
			assert.Contains(t, content, "In Stock: 2 | Low Stock: 1 | Out of Stock: 1")
		})
	}
}

func TestGridRendererAvailability(t *testing.T) {
	cols := make([]Column, 250)
	row := Row{}
	for i := range cols {
		key := fmt.Sprintf("c%d", i)
		cols[i] = Column{Header: key, Key: key}
		row[key] = i
	}
	tbl := BuildTable(Request{Rows: []Row{row}, Columns: cols}, fixedNow)

	assert.ErrorIs(t, NewGridRenderer().Available(tbl), ErrLayoutUnavailable)
	assert.NoError(t, NewManualRenderer().Available(tbl))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{34, 197, 94, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderDocumentWithImages(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tomato.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		case "/broken.png":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rows := productRows()
	rows[0]["imageUrl"] = srv.URL + "/tomato.png"
	rows[1]["imageUrl"] = srv.URL + "/missing.png"
	rows[2]["imageUrl"] = srv.URL + "/broken.png"
	req := Request{Rows: rows, Columns: ProductColumns(), Section: SectionProducts, ImageKey: "imageUrl"}

	for _, layout := range []string{LayoutAuto, LayoutManual} {
		t.Run(layout, func(t *testing.T) {
			exp := NewExporter(WithLayout(layout), WithImageWorkers(2), WithImageLoader(&HTTPImageLoader{Client: srv.Client()}))
			res, err := exp.RenderDocument(context.Background(), req)
			require.NoError(t, err)

			require.Len(t, res.Table.Images, 3)
			assert.NotNil(t, res.Table.Images[0])
			assert.Nil(t, res.Table.Images[1])
			assert.Nil(t, res.Table.Images[2])
			assert.LessOrEqual(t, res.Table.TotalWidth(), ContentWidth+1e-9)
			assert.True(t, bytes.HasPrefix(res.Bytes, []byte("%PDF")))
		})
	}
}
