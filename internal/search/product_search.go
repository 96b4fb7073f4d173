package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tharakax/FarmNex-sub002/internal/domain"
	"github.com/olivere/elastic/v7"
)

const defaultSearchLimit = 100

// NewElasticClient connects to a single-node cluster without sniffing.
func NewElasticClient(url string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return client, nil
}

// hitFlags holds the fields whose absence from a stored document means
// something other than their zero value.
type hitFlags struct {
	IsActive *bool `json:"isActive"`
}

type productSearcher struct {
	client *elastic.Client
	index  string
}

func NewProductSearcher(client *elastic.Client, index string) domain.ProductSearcher {
	return &productSearcher{client: client, index: index}
}

// Search runs a full-text match over name, description and category.
// An empty query returns every product up to limit.
func (s *productSearcher) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var q elastic.Query = elastic.NewMatchAllQuery()
	if query != "" {
		q = elastic.NewMultiMatchQuery(query, "name^2", "description", "category")
	}

	res, err := s.client.Search().
		Index(s.index).
		Query(q).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}
	if res.Hits == nil {
		return nil, nil
	}

	products := make([]domain.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p domain.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			return nil, fmt.Errorf("decode hit %s: %w", hit.Id, err)
		}
		var flags hitFlags
		if err := json.Unmarshal(hit.Source, &flags); err != nil {
			return nil, fmt.Errorf("decode hit %s: %w", hit.Id, err)
		}
		// Documents indexed before isActive existed are active.
		p.IsActive = flags.IsActive == nil || *flags.IsActive
		if p.ID == "" {
			p.ID = hit.Id
		}
		if p.Status == "" {
			p.Status = domain.ProductStatus(p)
		}
		products = append(products, p)
	}
	return products, nil
}
