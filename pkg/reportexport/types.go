package reportexport

import (
	"errors"
	"fmt"
)

// Row is one record to export, keyed by column key.
type Row map[string]interface{}

// Column binds a display header to a row key.
type Column struct {
	Header string `yaml:"header" json:"header"`
	Key    string `yaml:"key" json:"key"`
}

// Request describes one export.
type Request struct {
	Rows     []Row
	Title    string
	Columns  []Column
	Filename string
	Section  Section
	// ImageKey names the row field that holds an image URL. When set, the
	// document gets a thumbnail column in front of the declared columns.
	ImageKey string
	// TotalField names a currency field summed into the report summary,
	// formatted with Currency.
	TotalField string
	Currency   string
}

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

// Result is a finished export.
type Result struct {
	Filename    string
	ContentType string
	Bytes       []byte
	Renderer    string
	Pages       int
	Table       *Table
}

var (
	ErrEmptyInput        = errors.New("no data to export")
	ErrInvalidColumns    = errors.New("invalid column definitions")
	ErrSerialization     = errors.New("serialization failed")
	ErrLayoutUnavailable = errors.New("layout engine unavailable")
	ErrImageLoad         = errors.New("image load failed")
)

// ExportError is the error returned to callers of the exporter.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s Export Failed: %v", formatLabel(e.Format), e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func exportError(format string, err error) error {
	return &ExportError{Format: format, Err: err}
}

func formatLabel(format string) string {
	switch format {
	case FormatPDF:
		return "PDF"
	case FormatXLSX:
		return "Excel"
	case FormatCSV:
		return "CSV"
	default:
		return "Export"
	}
}

func validate(req Request) error {
	if len(req.Rows) == 0 || len(req.Columns) == 0 {
		return ErrEmptyInput
	}
	seen := make(map[string]bool, len(req.Columns))
	for i, col := range req.Columns {
		if col.Key == "" {
			return fmt.Errorf("%w: column %d has no key", ErrInvalidColumns, i)
		}
		if seen[col.Key] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidColumns, col.Key)
		}
		seen[col.Key] = true
	}
	return nil
}
