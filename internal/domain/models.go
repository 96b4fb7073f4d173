package domain

import (
	"context"
	"time"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity float64   `json:"stockQuantity"`
	MinStock      float64   `json:"minStock" export:"-"`
	MaxStock      float64   `json:"maxStock" export:"-"`
	Unit          string    `json:"unit"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl"`
	IsActive      bool      `json:"isActive" export:"-"`
	Status        string    `json:"status"`
	CreatedDate   time.Time `json:"createdDate"`
	UpdatedAt     time.Time `json:"lastUpdated"`
}

type Supply struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Quantity     float64    `json:"quantity"`
	MinStock     float64    `json:"minStock" export:"-"`
	MaxStock     float64    `json:"maxStock" export:"-"`
	Unit         string     `json:"unit"`
	CostPerUnit  float64    `json:"costPerUnit"`
	TotalCost    float64    `json:"totalCost"`
	Supplier     string     `json:"supplier"`
	Location     string     `json:"location"`
	Condition    string     `json:"condition" export:"-"`
	Status       string     `json:"status"`
	PurchaseDate time.Time  `json:"purchaseDate"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	UpdatedAt    time.Time  `json:"lastUpdated"`
}

type Sale struct {
	ID             string    `json:"id"`
	Customer       string    `json:"customer"`
	Product        string    `json:"product"`
	Quantity       float64   `json:"quantity"`
	UnitPrice      float64   `json:"unitPrice"`
	TotalAmount    float64   `json:"totalAmount"`
	SaleDate       time.Time `json:"saleDate"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus"`
}

// InventoryItem is one line of the combined products and supplies stock view.
type InventoryItem struct {
	ID           string    `json:"id"`
	ProductName  string    `json:"productName"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"pricePerUnit"`
	TotalValue   float64   `json:"totalValue"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// ReportFilter narrows the rows a report pulls from storage.
type ReportFilter struct {
	Category string
	// Days limits rows to the last N days; zero means no limit.
	Days  int
	Limit int
}

// Since returns the lower time bound implied by Days, or the zero time.
func (f ReportFilter) Since(now time.Time) time.Time {
	if f.Days <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -f.Days)
}

type ReportRepository interface {
	ListProducts(ctx context.Context, filter ReportFilter) ([]Product, error)
	ListSupplies(ctx context.Context, filter ReportFilter) ([]Supply, error)
	ListSales(ctx context.Context, filter ReportFilter) ([]Sale, error)
}

type ProductSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]Product, error)
}
