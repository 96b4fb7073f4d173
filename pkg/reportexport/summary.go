package reportexport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// StatusCount is how many rows carry one status label.
type StatusCount struct {
	Label string   `json:"label"`
	Kind  CellKind `json:"kind"`
	Count int      `json:"count"`
}

// Summary is the closing block of a report. Statuses come from the first
// status column in order of first appearance; Total is empty unless the
// request names a TotalField.
type Summary struct {
	Records  int           `json:"records"`
	Statuses []StatusCount `json:"statuses,omitempty"`
	Total    string        `json:"total,omitempty"`
}

// Summarize computes the summary of req. types are the inferred column types.
func Summarize(req Request, types []ColumnType) Summary {
	s := Summary{Records: len(req.Rows)}

	statusKey := ""
	for i, t := range types {
		if t == TypeStatus {
			statusKey = req.Columns[i].Key
			break
		}
	}
	if statusKey != "" {
		index := make(map[string]int)
		for _, row := range req.Rows {
			label := CellText(row[statusKey])
			if label == "" {
				continue
			}
			i, ok := index[label]
			if !ok {
				i = len(s.Statuses)
				index[label] = i
				s.Statuses = append(s.Statuses, StatusCount{Label: label, Kind: statusKind(label)})
			}
			s.Statuses[i].Count++
		}
	}

	if req.TotalField != "" {
		var sum float64
		for _, row := range req.Rows {
			if v, ok := amount(row[req.TotalField]); ok {
				sum += v
			}
		}
		currency := req.Currency
		if currency == "" {
			currency = DefaultCurrency
		}
		s.Total = CurrencyFormatWith(sum, currency)
	}
	return s
}

// amount reads a number out of a raw value or an already formatted
// currency string such as "LKR 1,250.00".
func amount(v interface{}) (float64, bool) {
	if s, ok := v.(string); ok {
		m := amountPattern.FindString(s)
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		return f, err == nil
	}
	return toFloat(v)
}

// Lines is the summary as drawn in a document: the record count and total
// first, then the status breakdown.
func (s Summary) Lines() []string {
	first := fmt.Sprintf("Total Records: %d", s.Records)
	if s.Total != "" {
		first += "    Total Value: " + s.Total
	}
	lines := []string{first}
	if len(s.Statuses) > 0 {
		parts := make([]string, len(s.Statuses))
		for i, st := range s.Statuses {
			parts[i] = fmt.Sprintf("%s: %d", st.Label, st.Count)
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return lines
}
