package repository

import (
	"testing"
	"time"

	"github.com/Tharakax/FarmNex-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestListQuery(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NoFilter", func(t *testing.T) {
		q, args := listQuery("id, name", "products", "category", "created_at", "name", domain.ReportFilter{}, now)
		assert.Equal(t, "SELECT id, name FROM products ORDER BY name", q)
		assert.Empty(t, args)
	})

	t.Run("AllFilters", func(t *testing.T) {
		filter := domain.ReportFilter{Category: "vegetables", Days: 7, Limit: 50}
		q, args := listQuery("id", "products", "category", "created_at", "name", filter, now)
		assert.Equal(t, "SELECT id FROM products WHERE category = $1 AND created_at >= $2 ORDER BY name LIMIT $3", q)
		assert.Equal(t, []interface{}{"vegetables", now.AddDate(0, 0, -7), 50}, args)
	})

	t.Run("CategoryIgnoredWithoutColumn", func(t *testing.T) {
		q, args := listQuery("id", "sales", "", "sale_date", "sale_date DESC", domain.ReportFilter{Category: "x", Limit: 10}, now)
		assert.Equal(t, "SELECT id FROM sales ORDER BY sale_date DESC LIMIT $1", q)
		assert.Equal(t, []interface{}{10}, args)
	})
}
