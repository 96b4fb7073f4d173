package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Tharakax/FarmNex-sub002/internal/domain"
)

type reportRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{db: db, now: time.Now}
}

const (
	productColumns = `id, name, category, description, price, stock_quantity, min_stock, max_stock,
		unit, location, image_url, is_active, created_at, updated_at`
	supplyColumns = `id, name, type, quantity, min_stock, max_stock, unit, cost_per_unit, supplier,
		location, condition, status, purchase_date, expiry_date, updated_at`
	saleColumns = `id, customer_name, product_name, quantity, unit_price, total_amount, sale_date,
		payment_status, delivery_status`
)

// listQuery assembles a SELECT with optional category, date and limit filters.
func listQuery(columns, table, categoryCol, dateCol, orderBy string, filter domain.ReportFilter, now time.Time) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	var where []string

	fmt.Fprintf(&sb, "SELECT %s FROM %s", columns, table)
	if filter.Category != "" && categoryCol != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("%s = $%d", categoryCol, len(args)))
	}
	if since := filter.Since(now); !since.IsZero() && dateCol != "" {
		args = append(args, since)
		where = append(where, fmt.Sprintf("%s >= $%d", dateCol, len(args)))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	fmt.Fprintf(&sb, " ORDER BY %s", orderBy)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

func (r *reportRepository) ListProducts(ctx context.Context, filter domain.ReportFilter) ([]domain.Product, error) {
	query, args := listQuery(productColumns, "products", "category", "created_at", "name", filter, r.now())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var description, location, imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &description, &p.Price, &p.StockQuantity,
			&p.MinStock, &p.MaxStock, &p.Unit, &location, &imageURL, &p.IsActive, &p.CreatedDate, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Description = description.String
		p.Location = location.String
		p.ImageURL = imageURL.String
		p.Status = domain.ProductStatus(p)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *reportRepository) ListSupplies(ctx context.Context, filter domain.ReportFilter) ([]domain.Supply, error) {
	now := r.now()
	query, args := listQuery(supplyColumns, "farm_supplies", "type", "purchase_date", "name", filter, now)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplies: %w", err)
	}
	defer rows.Close()

	var supplies []domain.Supply
	for rows.Next() {
		var s domain.Supply
		var supplier, location, condition, status sql.NullString
		var expiry sql.NullTime
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Quantity, &s.MinStock, &s.MaxStock, &s.Unit,
			&s.CostPerUnit, &supplier, &location, &condition, &status, &s.PurchaseDate, &expiry, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supply: %w", err)
		}
		s.Supplier = supplier.String
		s.Location = location.String
		s.Condition = condition.String
		s.Status = status.String
		if expiry.Valid {
			s.ExpiryDate = &expiry.Time
		}
		s.TotalCost = s.Quantity * s.CostPerUnit
		s.Status = domain.SupplyStatus(s, now)
		supplies = append(supplies, s)
	}
	return supplies, rows.Err()
}

func (r *reportRepository) ListSales(ctx context.Context, filter domain.ReportFilter) ([]domain.Sale, error) {
	query, args := listQuery(saleColumns, "sales", "", "sale_date", "sale_date DESC", filter, r.now())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.Customer, &s.Product, &s.Quantity, &s.UnitPrice, &s.TotalAmount,
			&s.SaleDate, &s.PaymentStatus, &s.DeliveryStatus); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
