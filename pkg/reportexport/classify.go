package reportexport

import (
	"regexp"
	"strings"
)

// CellKind is the visual classification of a table cell.
type CellKind int

const (
	KindPlain CellKind = iota
	KindSuccess
	KindWarning
	KindError
	KindInfo
	KindCurrency
	KindNumeric
)

func (k CellKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindInfo:
		return "info"
	case KindCurrency:
		return "currency"
	case KindNumeric:
		return "numeric"
	default:
		return "plain"
	}
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// CellStyle is what a layout engine needs to draw one cell.
type CellStyle struct {
	Kind  CellKind
	Align Align
	Bold  bool
	Color RGB
}

var (
	currencyPattern = regexp.MustCompile(`^-?(?:[A-Z]{3}\s|[$€£¥₹]\s?|Rs\.?\s?)-?\d[\d,]*(?:\.\d+)?$`)
	numericPattern  = regexp.MustCompile(`^-?\d+(?:,\d{3})*(?:\.\d+)?$`)
)

// Status vocabularies, checked in this order so negated forms such as
// "inactive" or "not available" never land in the success family.
var statusFamilies = []struct {
	kind  CellKind
	words []string
}{
	{KindError, []string{"out", "inactive", "expired", "unavailable", "not available", "not in stock", "no stock", "not active"}},
	{KindWarning, []string{"low", "warning", "maintenance"}},
	{KindInfo, []string{"over"}},
	{KindSuccess, []string{"active", "in stock", "available"}},
}

// Classify decides how a cell is drawn. It depends only on its arguments
// and is shared by every layout engine.
func Classify(colIndex int, t ColumnType, text string) CellStyle {
	style := CellStyle{Kind: KindPlain, Align: AlignLeft, Color: colorText}

	switch {
	case t == TypeStatus:
		if kind := statusKind(text); kind != KindPlain {
			style.Kind = kind
			style.Bold = true
			style.Align = AlignCenter
			style.Color = kindColor(kind)
		}
	case currencyPattern.MatchString(text):
		style.Kind = KindCurrency
		style.Align = AlignRight
		style.Bold = true
		style.Color = colorSuccess
	case numericPattern.MatchString(text):
		style.Kind = KindNumeric
		style.Align = AlignRight
		style.Bold = true
	}

	if colIndex == 0 {
		style.Align = AlignCenter
	}
	return style
}

func statusKind(text string) CellKind {
	lower := strings.ToLower(text)
	for _, family := range statusFamilies {
		for _, w := range family.words {
			if strings.Contains(lower, w) {
				return family.kind
			}
		}
	}
	return KindPlain
}

func kindColor(k CellKind) RGB {
	switch k {
	case KindSuccess, KindCurrency:
		return colorSuccess
	case KindWarning:
		return colorWarning
	case KindError:
		return colorError
	case KindInfo:
		return colorInfo
	default:
		return colorText
	}
}
