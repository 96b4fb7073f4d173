package domain

import (
	"strings"
	"time"
)

const (
	StatusInStock     = "In Stock"
	StatusLowStock    = "Low Stock"
	StatusOutOfStock  = "Out of Stock"
	StatusOverstocked = "Overstocked"
	StatusMaintenance = "Maintenance Required"
	StatusExpired     = "Expired"
	StatusInactive    = "Inactive"

	DefaultMinStock = 5
	DefaultMaxStock = 100
)

// StockStatus labels a stock level against its thresholds. Zero thresholds
// fall back to the defaults.
func StockStatus(current, min, max float64) string {
	if min <= 0 {
		min = DefaultMinStock
	}
	if max <= 0 {
		max = DefaultMaxStock
	}
	switch {
	case current <= 0:
		return StatusOutOfStock
	case current <= min:
		return StatusLowStock
	case current > max:
		return StatusOverstocked
	default:
		return StatusInStock
	}
}

// SupplyStatus checks equipment condition and expiry before stock level.
func SupplyStatus(s Supply, now time.Time) string {
	if strings.EqualFold(s.Condition, "maintenance") || strings.EqualFold(s.Status, "maintenance") {
		return StatusMaintenance
	}
	if s.ExpiryDate != nil && !s.ExpiryDate.IsZero() && s.ExpiryDate.Before(now) {
		return StatusExpired
	}
	return StockStatus(s.Quantity, s.MinStock, s.MaxStock)
}

// ProductStatus is StockStatus for products, with unlisted products marked inactive.
func ProductStatus(p Product) string {
	if !p.IsActive {
		return StatusInactive
	}
	return StockStatus(p.StockQuantity, p.MinStock, p.MaxStock)
}

// Inventory merges products and supplies into one stock listing.
func Inventory(products []Product, supplies []Supply, now time.Time) []InventoryItem {
	items := make([]InventoryItem, 0, len(products)+len(supplies))
	for _, p := range products {
		items = append(items, InventoryItem{
			ID:           p.ID,
			ProductName:  p.Name,
			Category:     p.Category,
			Quantity:     p.StockQuantity,
			Unit:         p.Unit,
			PricePerUnit: p.Price,
			TotalValue:   p.Price * p.StockQuantity,
			Location:     p.Location,
			Status:       ProductStatus(p),
			LastUpdated:  p.UpdatedAt,
		})
	}
	for _, s := range supplies {
		items = append(items, InventoryItem{
			ID:           s.ID,
			ProductName:  s.Name,
			Category:     s.Type,
			Quantity:     s.Quantity,
			Unit:         s.Unit,
			PricePerUnit: s.CostPerUnit,
			TotalValue:   s.CostPerUnit * s.Quantity,
			Location:     s.Location,
			Status:       SupplyStatus(s, now),
			LastUpdated:  s.UpdatedAt,
		})
	}
	return items
}
