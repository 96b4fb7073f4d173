package reportexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		colType   ColumnType
		text      string
		wantKind  CellKind
		wantAlign Align
	}{
		{"OutOfStock", 3, TypeStatus, "Out of Stock", KindError, AlignCenter},
		{"Inactive", 3, TypeStatus, "Inactive", KindError, AlignCenter},
		{"Expired", 3, TypeStatus, "Expired", KindError, AlignCenter},
		{"Unavailable", 3, TypeStatus, "Unavailable", KindError, AlignCenter},
		{"NotAvailable", 2, TypeStatus, "Not Available", KindError, AlignCenter},
		{"NotInStock", 2, TypeStatus, "Not in stock", KindError, AlignCenter},
		{"NoStock", 2, TypeStatus, "No Stock", KindError, AlignCenter},
		{"NotActive", 2, TypeStatus, "not active", KindError, AlignCenter},
		{"Available", 2, TypeStatus, "Available", KindSuccess, AlignCenter},
		{"LowStock", 3, TypeStatus, "Low Stock", KindWarning, AlignCenter},
		{"Maintenance", 3, TypeStatus, "Maintenance Required", KindWarning, AlignCenter},
		{"Overstocked", 3, TypeStatus, "Overstocked", KindInfo, AlignCenter},
		{"InStock", 3, TypeStatus, "In Stock", KindSuccess, AlignCenter},
		{"Active", 3, TypeStatus, "active", KindSuccess, AlignCenter},
		{"UnknownStatus", 3, TypeStatus, "Pending Review", KindPlain, AlignLeft},
		{"CurrencyCode", 2, TypePrice, "LKR 450.00", KindCurrency, AlignRight},
		{"CurrencySymbol", 2, TypePrice, "$1,250.50", KindCurrency, AlignRight},
		{"Rupees", 2, TypeDefault, "Rs. 300", KindCurrency, AlignRight},
		{"SKUIsNotCurrency", 2, TypeDefault, "SKU123", KindPlain, AlignLeft},
		{"CodeWithoutSpaceIsNotCurrency", 2, TypeDefault, "ABC12.50", KindPlain, AlignLeft},
		{"Numeric", 4, TypeQuantity, "100", KindNumeric, AlignRight},
		{"NumericWithGrouping", 4, TypeQuantity, "12,500.75", KindNumeric, AlignRight},
		{"DateIsPlain", 5, TypeDate, "2024-01-15", KindPlain, AlignLeft},
		{"FirstColumnCentered", 0, TypeID, "1", KindNumeric, AlignCenter},
		{"StatusWordsOutsideStatusColumn", 1, TypeName, "Out of Stock", KindPlain, AlignLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.index, tt.colType, tt.text)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantAlign, got.Align)
		})
	}
}

func TestClassifyEmphasis(t *testing.T) {
	currency := Classify(2, TypePrice, "LKR 450.00")
	assert.True(t, currency.Bold)
	assert.Equal(t, colorSuccess, currency.Color)

	errStatus := Classify(1, TypeStatus, "Out of Stock")
	assert.True(t, errStatus.Bold)
	assert.Equal(t, colorError, errStatus.Color)

	plain := Classify(1, TypeName, "Fresh Milk")
	assert.False(t, plain.Bold)
	assert.Equal(t, colorText, plain.Color)
}
