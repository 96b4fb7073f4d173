package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tharakax/FarmNex-sub002/internal/domain"
	"github.com/Tharakax/FarmNex-sub002/internal/logger"
	"github.com/Tharakax/FarmNex-sub002/pkg/googlecloud"
	"github.com/Tharakax/FarmNex-sub002/pkg/reportexport"
)

var (
	ErrUnknownFormat     = errors.New("unsupported export format")
	ErrUnknownPreset     = errors.New("unknown report preset")
	ErrNoDataSource      = errors.New("report has no data source")
	ErrSourceUnavailable = errors.New("data source not configured")
	ErrAuditDisabled     = errors.New("export history is not configured")
)

// AuditStore persists one record per export. *googlecloud.Client satisfies it.
type AuditStore interface {
	RecordExport(ctx context.Context, rec *googlecloud.ExportRecord) error
	ListRecentExports(ctx context.Context, limit int) ([]googlecloud.ExportRecord, error)
	ListSectionExports(ctx context.Context, section string, limit int) ([]googlecloud.ExportRecord, error)
}

type ReportService interface {
	// ExportRows renders caller-supplied rows.
	ExportRows(ctx context.Context, format string, req reportexport.Request) (*reportexport.Result, error)
	// ExportPreset loads the preset's rows from storage and renders them.
	ExportPreset(ctx context.Context, preset, format string, filter domain.ReportFilter) (*reportexport.Result, error)
	// ExportSearch renders the products matching query.
	ExportSearch(ctx context.Context, query, format string, limit int) (*reportexport.Result, error)
	Presets() []reportexport.Preset
	Preset(name string) (reportexport.Preset, error)
	// History lists recent exports, optionally narrowed to one section.
	History(ctx context.Context, section string, limit int) ([]googlecloud.ExportRecord, error)
}

type ReportServiceDeps struct {
	Exporter *reportexport.Exporter
	Catalog  *reportexport.Catalog
	Repo     domain.ReportRepository
	Searcher domain.ProductSearcher
	Audit    AuditStore
	Currency string
}

type reportService struct {
	exporter *reportexport.Exporter
	catalog  *reportexport.Catalog
	repo     domain.ReportRepository
	searcher domain.ProductSearcher
	audit    AuditStore
	currency string
	now      func() time.Time
}

func NewReportService(deps ReportServiceDeps) ReportService {
	s := &reportService{
		exporter: deps.Exporter,
		catalog:  deps.Catalog,
		repo:     deps.Repo,
		searcher: deps.Searcher,
		audit:    deps.Audit,
		currency: deps.Currency,
		now:      time.Now,
	}
	if s.exporter == nil {
		s.exporter = reportexport.NewExporter()
	}
	if s.catalog == nil {
		s.catalog = reportexport.NewCatalog()
	}
	if s.currency == "" {
		s.currency = reportexport.DefaultCurrency
	}
	return s
}

func (s *reportService) ExportRows(ctx context.Context, format string, req reportexport.Request) (*reportexport.Result, error) {
	return s.render(ctx, format, "", req)
}

func (s *reportService) ExportPreset(ctx context.Context, name, format string, filter domain.ReportFilter) (*reportexport.Result, error) {
	preset, err := s.Preset(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadRows(ctx, preset.Source, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s rows: %w", preset.Name, err)
	}

	return s.render(ctx, format, preset.Name, preset.Request(rows, s.currency))
}

func (s *reportService) ExportSearch(ctx context.Context, query, format string, limit int) (*reportexport.Result, error) {
	if s.searcher == nil {
		return nil, fmt.Errorf("product search: %w", ErrSourceUnavailable)
	}
	preset, err := s.Preset("products")
	if err != nil {
		return nil, err
	}

	products, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	rows, err := reportexport.RowsFromStructs(products)
	if err != nil {
		return nil, err
	}

	req := preset.Request(rows, s.currency)
	req.Title = "Product Search Results"
	if query != "" {
		req.Title = fmt.Sprintf("Product Search: %s", query)
	}
	return s.render(ctx, format, preset.Name, req)
}

func (s *reportService) Presets() []reportexport.Preset {
	return s.catalog.Presets()
}

func (s *reportService) Preset(name string) (reportexport.Preset, error) {
	p, ok := s.catalog.Preset(name)
	if !ok {
		return reportexport.Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return p, nil
}

func (s *reportService) History(ctx context.Context, section string, limit int) ([]googlecloud.ExportRecord, error) {
	if s.audit == nil {
		return nil, ErrAuditDisabled
	}
	if section != "" {
		return s.audit.ListSectionExports(ctx, string(reportexport.ParseSection(section)), limit)
	}
	return s.audit.ListRecentExports(ctx, limit)
}

func (s *reportService) loadRows(ctx context.Context, source string, filter domain.ReportFilter) ([]reportexport.Row, error) {
	if source == "" {
		return nil, ErrNoDataSource
	}
	if s.repo == nil {
		return nil, ErrSourceUnavailable
	}

	var data interface{}
	switch source {
	case "products":
		products, err := s.repo.ListProducts(ctx, filter)
		if err != nil {
			return nil, err
		}
		data = products
	case "supplies":
		supplies, err := s.repo.ListSupplies(ctx, filter)
		if err != nil {
			return nil, err
		}
		data = supplies
	case "sales":
		sales, err := s.repo.ListSales(ctx, filter)
		if err != nil {
			return nil, err
		}
		data = sales
	case "inventory":
		products, err := s.repo.ListProducts(ctx, filter)
		if err != nil {
			return nil, err
		}
		supplies, err := s.repo.ListSupplies(ctx, filter)
		if err != nil {
			return nil, err
		}
		data = domain.Inventory(products, supplies, s.now())
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoDataSource, source)
	}
	return reportexport.RowsFromStructs(data)
}

func (s *reportService) render(ctx context.Context, format, preset string, req reportexport.Request) (*reportexport.Result, error) {
	var (
		res *reportexport.Result
		err error
	)
	switch strings.ToLower(format) {
	case reportexport.FormatPDF:
		res, err = s.exporter.RenderDocument(ctx, req)
	case reportexport.FormatXLSX:
		res, err = s.exporter.RenderSpreadsheet(ctx, req)
	case reportexport.FormatCSV:
		res, err = s.exporter.RenderCSV(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err != nil {
		logger.ErrorLog(ctx, "export %s failed: %v", format, err)
	} else {
		logger.InfoLog(ctx, "exported %s (%d rows, %d bytes)", res.Filename, len(req.Rows), len(res.Bytes))
	}
	s.record(ctx, format, preset, req, res, err)
	return res, err
}

// record writes the audit entry; a failing store never fails the export.
func (s *reportService) record(ctx context.Context, format, preset string, req reportexport.Request, res *reportexport.Result, exportErr error) {
	if s.audit == nil {
		return
	}
	rec := &googlecloud.ExportRecord{
		Format:  strings.ToLower(format),
		Preset:  preset,
		Title:   req.Title,
		Rows:    len(req.Rows),
		Section: string(reportexport.ParseSection(string(req.Section))),
	}
	if res != nil {
		rec.Filename = res.Filename
		rec.Renderer = res.Renderer
		rec.Bytes = len(res.Bytes)
	}
	if exportErr != nil {
		rec.Error = exportErr.Error()
	}
	if err := s.audit.RecordExport(ctx, rec); err != nil {
		logger.WarnLog(ctx, "failed to record export audit: %v", err)
	}
}
