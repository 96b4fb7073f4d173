package reportexport

import (
	"strings"
	"unicode"
)

// ColumnType is the semantic kind of a column, inferred from its header and key.
type ColumnType int

const (
	TypeDefault ColumnType = iota
	TypeID
	TypeStatus
	TypeDescription
	TypeName
	TypePrice
	TypeQuantity
	TypeCategory
	TypeUnit
	TypeDate
)

func (t ColumnType) String() string {
	switch t {
	case TypeID:
		return "id"
	case TypeStatus:
		return "status"
	case TypeDescription:
		return "description"
	case TypeName:
		return "name"
	case TypePrice:
		return "price"
	case TypeQuantity:
		return "quantity"
	case TypeCategory:
		return "category"
	case TypeUnit:
		return "unit"
	case TypeDate:
		return "date"
	default:
		return "default"
	}
}

// Page geometry for A4 portrait, in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	PageMargin   = 10.0
	ContentWidth = PageWidth - 2*PageMargin
)

// InferColumnType matches header and key against the type vocabulary in a
// fixed order; the first match wins.
func InferColumnType(col Column) ColumnType {
	if isIDColumn(col) {
		return TypeID
	}
	s := strings.ToLower(col.Header + " " + col.Key)
	switch {
	case strings.Contains(s, "status"):
		return TypeStatus
	case strings.Contains(s, "description"):
		return TypeDescription
	case strings.Contains(s, "name"):
		return TypeName
	case strings.Contains(s, "price"), strings.Contains(s, "cost"):
		return TypePrice
	case strings.Contains(s, "quantity"), strings.Contains(s, "stock"):
		return TypeQuantity
	case strings.Contains(s, "category"):
		return TypeCategory
	case strings.Contains(s, "unit"):
		return TypeUnit
	case strings.Contains(s, "date"):
		return TypeDate
	default:
		return TypeDefault
	}
}

// isIDColumn only accepts "id" as a whole word or identifier suffix, so keys
// like "paid" or "liquid" are not mistaken for identifiers.
func isIDColumn(col Column) bool {
	key := col.Key
	lower := strings.ToLower(key)
	if lower == "id" || lower == "_id" || strings.HasSuffix(lower, "_id") {
		return true
	}
	if n := len(key); n > 2 && (strings.HasSuffix(key, "Id") || strings.HasSuffix(key, "ID")) {
		if unicode.IsLower(rune(key[n-3])) || unicode.IsDigit(rune(key[n-3])) {
			return true
		}
	}
	for _, word := range strings.FieldsFunc(strings.ToLower(col.Header), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if word == "id" {
			return true
		}
	}
	return false
}

type widthTable map[ColumnType]float64

// Three buckets keyed on column count; the 8-column bucket keeps status at 28.
var (
	widthsNarrow = widthTable{
		TypeID: 20, TypeName: 40, TypeDescription: 50, TypePrice: 28, TypeQuantity: 22,
		TypeStatus: 28, TypeCategory: 28, TypeUnit: 18, TypeDate: 28, TypeDefault: 30,
	}
	widthsEight = widthTable{
		TypeID: 16, TypeName: 30, TypeDescription: 34, TypePrice: 24, TypeQuantity: 20,
		TypeStatus: 28, TypeCategory: 22, TypeUnit: 14, TypeDate: 22, TypeDefault: 22,
	}
	widthsWide = widthTable{
		TypeID: 14, TypeName: 26, TypeDescription: 30, TypePrice: 20, TypeQuantity: 18,
		TypeStatus: 20, TypeCategory: 18, TypeUnit: 12, TypeDate: 20, TypeDefault: 18,
	}
)

func widthsFor(count int) widthTable {
	switch {
	case count <= 7:
		return widthsNarrow
	case count == 8:
		return widthsEight
	default:
		return widthsWide
	}
}

// ColumnWidths allocates a width in millimetres to each column type. The
// bucket is chosen by len(types); the result never sums past maxWidth.
func ColumnWidths(types []ColumnType, maxWidth float64) []float64 {
	table := widthsFor(len(types))
	widths := make([]float64, len(types))
	for i, t := range types {
		widths[i] = table[t]
	}
	return fitWidths(widths, maxWidth)
}

// fitWidths scales widths down proportionally when their sum exceeds max.
func fitWidths(widths []float64, max float64) []float64 {
	var sum float64
	for _, w := range widths {
		sum += w
	}
	if sum <= max || sum == 0 {
		return widths
	}
	factor := max / sum
	for i := range widths {
		widths[i] *= factor
	}
	return widths
}

// InventoryColumns is the column set of the inventory report.
func InventoryColumns() []Column {
	return []Column{
		{Header: "ID", Key: "id"},
		{Header: "Product Name", Key: "productName"},
		{Header: "Category", Key: "category"},
		{Header: "Quantity", Key: "quantity"},
		{Header: "Unit", Key: "unit"},
		{Header: "Price per Unit", Key: "pricePerUnit"},
		{Header: "Total Value", Key: "totalValue"},
		{Header: "Location", Key: "location"},
		{Header: "Status", Key: "status"},
		{Header: "Last Updated", Key: "lastUpdated"},
	}
}

// SuppliesColumns is the column set of the farm supplies report.
func SuppliesColumns() []Column {
	return []Column{
		{Header: "ID", Key: "id"},
		{Header: "Supply Name", Key: "name"},
		{Header: "Type", Key: "type"},
		{Header: "Quantity", Key: "quantity"},
		{Header: "Unit", Key: "unit"},
		{Header: "Cost per Unit", Key: "costPerUnit"},
		{Header: "Total Cost", Key: "totalCost"},
		{Header: "Supplier", Key: "supplier"},
		{Header: "Status", Key: "status"},
		{Header: "Purchase Date", Key: "purchaseDate"},
	}
}

// ProductColumns is the column set of the product catalogue report.
func ProductColumns() []Column {
	return []Column{
		{Header: "ID", Key: "id"},
		{Header: "Product Name", Key: "name"},
		{Header: "Category", Key: "category"},
		{Header: "Description", Key: "description"},
		{Header: "Price", Key: "price"},
		{Header: "Stock Quantity", Key: "stockQuantity"},
		{Header: "Unit", Key: "unit"},
		{Header: "Status", Key: "status"},
		{Header: "Created Date", Key: "createdDate"},
	}
}

// SalesColumns is the column set of the sales report.
func SalesColumns() []Column {
	return []Column{
		{Header: "ID", Key: "id"},
		{Header: "Customer", Key: "customer"},
		{Header: "Product", Key: "product"},
		{Header: "Quantity", Key: "quantity"},
		{Header: "Unit Price", Key: "unitPrice"},
		{Header: "Total Amount", Key: "totalAmount"},
		{Header: "Sale Date", Key: "saleDate"},
		{Header: "Payment Status", Key: "paymentStatus"},
		{Header: "Delivery Status", Key: "deliveryStatus"},
	}
}
