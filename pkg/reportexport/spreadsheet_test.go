package reportexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderSpreadsheet(t *testing.T) {
	ctx := context.Background()
	exp := NewExporter(WithClock(func() time.Time { return fixedNow }))

	rows := productRows()
	rows[0]["description"] = strings.Repeat("long ", 8000)
	req := Request{Rows: rows, Title: "Product Catalogue", Columns: ProductColumns(), Section: SectionProducts}

	res, err := exp.RenderSpreadsheet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "product-catalogue-2024-06-01.xlsx", res.Filename)
	assert.Equal(t, ContentTypeXLSX, res.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Product Catalogue", "Summary"}, f.GetSheetList())

	got, err := f.GetRows("Product Catalogue")
	require.NoError(t, err)
	require.Len(t, got, 4)

	t.Run("HeaderRow", func(t *testing.T) {
		assert.Equal(t, "ID", got[0][0])
		assert.Equal(t, "Created Date", got[0][8])

		headerStyle, err := f.GetCellStyle("Product Catalogue", "A1")
		require.NoError(t, err)
		assert.NotZero(t, headerStyle)

		dataStyle, err := f.GetCellStyle("Product Catalogue", "A2")
		require.NoError(t, err)
		assert.Zero(t, dataStyle)
	})

	t.Run("ValuesAsStrings", func(t *testing.T) {
		assert.Equal(t, "Fresh Tomatoes", got[1][1])
		assert.Equal(t, "1250", got[1][4])
		assert.Equal(t, "Out of Stock", got[3][7])
	})

	t.Run("LongCellTruncated", func(t *testing.T) {
		desc := got[1][3]
		assert.Equal(t, SpreadsheetCellLimit, utf8.RuneCountInString(desc))
		assert.True(t, strings.HasSuffix(desc, "..."))
	})

	t.Run("FixedColumnWidth", func(t *testing.T) {
		width, err := f.GetColWidth("Product Catalogue", "C")
		require.NoError(t, err)
		assert.Equal(t, 15.0, width)
	})

	t.Run("SummarySheet", func(t *testing.T) {
		total, err := f.GetCellValue("Summary", "B3")
		require.NoError(t, err)
		assert.Equal(t, "3", total)
		generated, err := f.GetCellValue("Summary", "B4")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01 10:30:00", generated)
	})

	t.Run("SummaryStatusCounts", func(t *testing.T) {
		summary, err := f.GetRows("Summary")
		require.NoError(t, err)
		require.Len(t, summary, 7)
		assert.Equal(t, []string{"In Stock", "1"}, summary[4])
		assert.Equal(t, []string{"Low Stock", "1"}, summary[5])
		assert.Equal(t, []string{"Out of Stock", "1"}, summary[6])
	})
}

func TestRenderSpreadsheetTotalValue(t *testing.T) {
	rows := productRows()
	rows[2]["status"] = "In Stock"
	req := Request{
		Rows:       ProjectForExportWith(rows, []string{"price"}, nil, "LKR"),
		Title:      "Stock Value",
		Columns:    ProductColumns(),
		TotalField: "price",
		Currency:   "LKR",
	}

	res, err := NewExporter().RenderSpreadsheet(context.Background(), req)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, []string{"Total Value", "LKR 2500.00"}, summary[4])
	assert.Equal(t, []string{"In Stock", "2"}, summary[5])
	assert.Equal(t, []string{"Low Stock", "1"}, summary[6])
}

func TestRenderSpreadsheetEmptyInput(t *testing.T) {
	_, err := NewExporter().RenderSpreadsheet(context.Background(), Request{Columns: SalesColumns()})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Contains(t, err.Error(), "Excel Export Failed")
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Data", SheetName(""))
	assert.Equal(t, "Data", SheetName("summary"))
	assert.Equal(t, "Sales  Q1", SheetName("Sales: Q1"))
	assert.Equal(t, 31, utf8.RuneCountInString(SheetName(strings.Repeat("x", 40))))
}

func TestRenderCSV(t *testing.T) {
	res, err := NewExporter().RenderCSV(context.Background(), Request{
		Rows:     productRows(),
		Columns:  []Column{{Header: "Name", Key: "name"}, {Header: "Status", Key: "status"}},
		Filename: "stock.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "stock.csv", res.Filename)

	records, err := csv.NewReader(bytes.NewReader(res.Bytes)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Status"},
		{"Fresh Tomatoes", "In Stock"},
		{"Green Apples", "Low Stock"},
		{"Fresh Milk", "Out of Stock"},
	}, records)
}
