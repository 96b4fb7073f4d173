package reportexport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const ellipsis = "..."

// Character budgets for document cells.
const (
	idMaxChars          = 8
	idTailChars         = 6
	nameMaxChars        = 25
	descriptionMaxChars = 40
	defaultMaxChars     = 35
)

// SpreadsheetCellLimit keeps cells under the 32,767 character hard limit of
// the XLSX format.
const SpreadsheetCellLimit = 32000

var controlReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")

// CellText renders a raw row value as single-line display text.
func CellText(v interface{}) string {
	return strings.TrimSpace(controlReplacer.Replace(rawText(v)))
}

func rawText(v interface{}) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case float64:
		s = formatFloat(val)
	case float32:
		s = formatFloat(float64(val))
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case int32:
		s = strconv.FormatInt(int64(val), 10)
	case uint:
		s = strconv.FormatUint(uint64(val), 10)
	case uint64:
		s = strconv.FormatUint(val, 10)
	case bool:
		s = strconv.FormatBool(val)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		s = val.Format(dateLayout)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		s = val.Format(dateLayout)
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprintf("%v", val)
	}
	return s
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TruncateCell applies the per-type character budget used in documents.
func TruncateCell(s string, t ColumnType) string {
	r := []rune(s)
	switch t {
	case TypeID:
		if len(r) > idMaxChars {
			return ellipsis + string(r[len(r)-idTailChars:])
		}
		return s
	case TypeName:
		return truncateRunes(r, nameMaxChars)
	case TypeDescription:
		return truncateRunes(r, descriptionMaxChars)
	default:
		return truncateRunes(r, defaultMaxChars)
	}
}

// truncateRunes keeps the result within max runes, ellipsis included.
func truncateRunes(r []rune, max int) string {
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}

// spreadsheetText coerces a value and enforces the spreadsheet cell ceiling.
func spreadsheetText(v interface{}) string {
	s := rawText(v)
	if len(s) <= SpreadsheetCellLimit {
		return s
	}
	return truncateRunes([]rune(s), SpreadsheetCellLimit)
}
