package reportexport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"

	// DefaultCurrency is the prefix used by CurrencyFormat.
	DefaultCurrency = "LKR"
)

var dateInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	timestampLayout,
	"2006-01-02T15:04:05",
	dateLayout,
}

// CurrencyFormat renders v with the default currency prefix.
func CurrencyFormat(v interface{}) string {
	return CurrencyFormatWith(v, DefaultCurrency)
}

// CurrencyFormatWith renders a number as "<prefix> 1234.50". Empty, missing
// and non-numeric values give "".
func CurrencyFormatWith(v interface{}, prefix string) string {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if prefix == "" {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprintf("%s %.2f", prefix, f)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// DateFormat renders a date as YYYY-MM-DD. Empty values give "" and anything
// that does not parse is returned unchanged.
func DateFormat(v interface{}) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format(dateLayout)
	case *time.Time:
		if d == nil || d.IsZero() {
			return ""
		}
		return d.Format(dateLayout)
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return ""
		}
		for _, layout := range dateInputLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(dateLayout)
			}
		}
		return d
	default:
		return rawText(v)
	}
}

// ProjectForExport returns new rows with the named currency and date fields
// formatted. The input rows are not modified. Currency values that are
// already strings are left untouched and DateFormat is stable on its own
// output, so projecting twice changes nothing.
func ProjectForExport(rows []Row, currencyFields, dateFields []string) []Row {
	return ProjectForExportWith(rows, currencyFields, dateFields, DefaultCurrency)
}

// ProjectForExportWith is ProjectForExport with an explicit currency prefix.
func ProjectForExportWith(rows []Row, currencyFields, dateFields []string, currency string) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		projected := make(Row, len(row))
		for k, v := range row {
			projected[k] = v
		}
		for _, f := range currencyFields {
			v, ok := projected[f]
			if !ok {
				continue
			}
			if _, isString := v.(string); isString {
				continue
			}
			projected[f] = CurrencyFormatWith(v, currency)
		}
		for _, f := range dateFields {
			if v, ok := projected[f]; ok {
				projected[f] = DateFormat(v)
			}
		}
		out[i] = projected
	}
	return out
}
