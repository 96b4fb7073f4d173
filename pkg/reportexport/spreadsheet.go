package reportexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	spreadsheetColWidth = 15.0
	summarySheet        = "Summary"
	maxSheetName        = 31
)

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// RenderSpreadsheet writes the rows as an XLSX workbook: one data sheet with
// a styled header row and a Summary sheet.
func (e *Exporter) RenderSpreadsheet(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, exportError(FormatXLSX, err)
	}

	now := e.now()
	theme := ThemeFor(req.Section)
	data, err := buildWorkbook(req, theme, now.Format(timestampLayout))
	if err != nil {
		return nil, exportError(FormatXLSX, fmt.Errorf("%w: %v", ErrSerialization, err))
	}

	e.logger.Info().Int("rows", len(req.Rows)).Int("columns", len(req.Columns)).Msg("spreadsheet rendered")
	return &Result{
		Filename:    ResolveFilename(req.Filename, req.Title, FormatXLSX, now),
		ContentType: ContentTypeXLSX,
		Bytes:       data,
		Renderer:    "excelize",
	}, nil
}

func buildWorkbook(req Request, theme Theme, generated string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(req.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: colorWhite.Hex()},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{theme.Primary.Hex()},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(1, len(req.Columns), spreadsheetColWidth); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(req.Columns))
	for i, col := range req.Columns {
		header[i] = excelize.Cell{Value: col.Header, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for r, row := range req.Rows {
		values := make([]interface{}, len(req.Columns))
		for i, col := range req.Columns {
			values[i] = spreadsheetText(row[col.Key])
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, values); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	if err := writeSummary(f, req, theme, generated); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, req Request, theme Theme, generated string) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	title := req.Title
	if title == "" {
		title = theme.Title
	}
	types := make([]ColumnType, len(req.Columns))
	for i, col := range req.Columns {
		types[i] = InferColumnType(col)
	}
	summary := Summarize(req, types)

	rows := [][2]interface{}{
		{"Report", title},
		{"Section", theme.Title},
		{"Total Records", summary.Records},
		{"Generated On", generated},
	}
	if summary.Total != "" {
		rows = append(rows, [2]interface{}{"Total Value", summary.Total})
	}
	for _, st := range summary.Statuses {
		rows = append(rows, [2]interface{}{st.Label, st.Count})
	}
	for i, r := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, label, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, label, label, bold); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, value, r[1]); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

// SheetName makes a valid worksheet name out of a report title.
func SheetName(title string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	name = strings.Trim(name, "'")
	if name == "" || strings.EqualFold(name, summarySheet) {
		name = "Data"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = strings.TrimSpace(string(r[:maxSheetName]))
	}
	return name
}

// RenderCSV writes the header row and the rows as comma-separated values,
// using the same value coercion as the spreadsheet.
func (e *Exporter) RenderCSV(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, exportError(FormatCSV, err)
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	header := make([]string, len(req.Columns))
	for i, col := range req.Columns {
		header[i] = col.Header
	}
	if err := w.Write(header); err != nil {
		return nil, exportError(FormatCSV, fmt.Errorf("%w: %v", ErrSerialization, err))
	}
	for _, row := range req.Rows {
		record := make([]string, len(req.Columns))
		for i, col := range req.Columns {
			record[i] = spreadsheetText(row[col.Key])
		}
		if err := w.Write(record); err != nil {
			return nil, exportError(FormatCSV, fmt.Errorf("%w: %v", ErrSerialization, err))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, exportError(FormatCSV, fmt.Errorf("%w: %v", ErrSerialization, err))
	}

	return &Result{
		Filename:    ResolveFilename(req.Filename, req.Title, FormatCSV, e.now()),
		ContentType: ContentTypeCSV,
		Bytes:       buf.Bytes(),
		Renderer:    "csv",
	}, nil
}
