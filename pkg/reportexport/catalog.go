package reportexport

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Preset is a named, reusable report definition.
type Preset struct {
	Name           string   `yaml:"name" json:"name"`
	Title          string   `yaml:"title" json:"title"`
	Section        Section  `yaml:"section" json:"section"`
	Columns        []Column `yaml:"columns" json:"columns"`
	CurrencyFields []string `yaml:"currency_fields" json:"currency_fields,omitempty"`
	DateFields     []string `yaml:"date_fields" json:"date_fields,omitempty"`
	ImageKey       string   `yaml:"image_key" json:"image_key,omitempty"`
	// TotalField is the currency field summed into the report summary.
	TotalField string `yaml:"total_field" json:"total_field,omitempty"`
	// Source names the stored data set that feeds the preset; empty means
	// rows must be supplied by the caller.
	Source string `yaml:"source" json:"source,omitempty"`
}

// Request builds an export request for rows, applying the preset's
// projection first.
func (p Preset) Request(rows []Row, currency string) Request {
	return Request{
		Rows:       ProjectForExportWith(rows, p.CurrencyFields, p.DateFields, currency),
		Title:      p.Title,
		Columns:    p.Columns,
		Section:    p.Section,
		ImageKey:   p.ImageKey,
		TotalField: p.TotalField,
		Currency:   currency,
	}
}

type catalogFile struct {
	Presets []Preset `yaml:"presets"`
}

// Catalog holds presets by name. It is read-only once built.
type Catalog struct {
	presets map[string]Preset
}

// NewCatalog returns a catalog holding the built-in presets.
func NewCatalog() *Catalog {
	c := &Catalog{presets: make(map[string]Preset)}
	for _, p := range builtinPresets() {
		c.presets[p.Name] = p
	}
	return c
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Name: "inventory", Source: "inventory", Title: "Inventory Stock Report", Section: SectionInventory,
			Columns:        InventoryColumns(),
			CurrencyFields: []string{"pricePerUnit", "totalValue"},
			TotalField:     "totalValue",
			DateFields:     []string{"lastUpdated"},
		},
		{
			Name: "supplies", Source: "supplies", Title: "Farm Supplies Report", Section: SectionSupplies,
			Columns:        SuppliesColumns(),
			CurrencyFields: []string{"costPerUnit", "totalCost"},
			TotalField:     "totalCost",
			DateFields:     []string{"purchaseDate"},
		},
		{
			Name: "products", Source: "products", Title: "Product Catalogue", Section: SectionProducts,
			Columns:        ProductColumns(),
			CurrencyFields: []string{"price"},
			DateFields:     []string{"createdDate"},
		},
		{
			Name: "sales", Source: "sales", Title: "Sales Report", Section: SectionSales,
			Columns:        SalesColumns(),
			CurrencyFields: []string{"unitPrice", "totalAmount"},
			TotalField:     "totalAmount",
			DateFields:     []string{"saleDate"},
		},
	}
}

// LoadYAML adds or replaces presets from a YAML document of the form
//
//	presets:
//	  - name: crops
//	    section: crops
//	    columns:
//	      - {header: ID, key: id}
func (c *Catalog) LoadYAML(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode presets: %w", err)
	}
	for i, p := range file.Presets {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		if err := validateColumns(p.Columns); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		p.Source = strings.ToLower(strings.TrimSpace(p.Source))
		p.Section = ParseSection(string(p.Section))
		if p.Title == "" {
			p.Title = ThemeFor(p.Section).Title
		}
		c.presets[p.Name] = p
	}
	return nil
}

// LoadFile is LoadYAML on the contents of path.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read presets: %w", err)
	}
	return c.LoadYAML(data)
}

func (c *Catalog) Preset(name string) (Preset, bool) {
	p, ok := c.presets[strings.ToLower(name)]
	return p, ok
}

// Presets lists every preset sorted by name.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, 0, len(c.presets))
	for _, p := range c.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validateColumns(cols []Column) error {
	if len(cols) == 0 {
		return ErrInvalidColumns
	}
	return validate(Request{Rows: []Row{{}}, Columns: cols})
}
