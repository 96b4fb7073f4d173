package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/Tharakax/FarmNex-sub002/internal/domain"
	"github.com/Tharakax/FarmNex-sub002/internal/logger"
	"github.com/Tharakax/FarmNex-sub002/internal/service"
	"github.com/Tharakax/FarmNex-sub002/internal/service/serviceutils"
	"github.com/Tharakax/FarmNex-sub002/pkg/reportexport"
	"github.com/labstack/echo/v4"
)

type ExportHandler struct {
	svc      service.ReportService
	currency string
}

func NewExportHandler(svc service.ReportService, currency string) *ExportHandler {
	if currency == "" {
		currency = reportexport.DefaultCurrency
	}
	return &ExportHandler{svc: svc, currency: currency}
}

// exportRequest is the body of POST /export/:format. When Preset is set,
// its columns, title, section and projections fill whatever the body leaves out.
type exportRequest struct {
	Preset         string                `json:"preset"`
	Title          string                `json:"title"`
	Filename       string                `json:"filename"`
	Section        string                `json:"section"`
	Columns        []reportexport.Column `json:"columns"`
	Rows           []reportexport.Row    `json:"rows"`
	CurrencyFields []string              `json:"currency_fields"`
	DateFields     []string              `json:"date_fields"`
	ImageKey       string                `json:"image_key"`
	TotalField     string                `json:"total_field"`
}

func (h *ExportHandler) buildRequest(body exportRequest) (reportexport.Request, error) {
	if body.Preset != "" {
		p, err := h.svc.Preset(body.Preset)
		if err != nil {
			return reportexport.Request{}, err
		}
		if len(body.Columns) == 0 {
			body.Columns = p.Columns
		}
		if body.Title == "" {
			body.Title = p.Title
		}
		if body.Section == "" {
			body.Section = string(p.Section)
		}
		if body.ImageKey == "" {
			body.ImageKey = p.ImageKey
		}
		if len(body.CurrencyFields) == 0 {
			body.CurrencyFields = p.CurrencyFields
		}
		if len(body.DateFields) == 0 {
			body.DateFields = p.DateFields
		}
		if body.TotalField == "" {
			body.TotalField = p.TotalField
		}
	}

	return reportexport.Request{
		Rows:       reportexport.ProjectForExportWith(body.Rows, body.CurrencyFields, body.DateFields, h.currency),
		Title:      body.Title,
		Columns:    body.Columns,
		Filename:   body.Filename,
		Section:    reportexport.ParseSection(body.Section),
		ImageKey:   body.ImageKey,
		TotalField: body.TotalField,
		Currency:   h.currency,
	}, nil
}

// ExportRowsHandler handles POST /export/:format
func (h *ExportHandler) ExportRowsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	var body exportRequest
	if err := c.Bind(&body); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}

	req, err := h.buildRequest(body)
	if err != nil {
		return h.exportError(c, err)
	}

	res, err := h.svc.ExportRows(ctx, c.Param("format"), req)
	if err != nil {
		return h.exportError(c, err)
	}
	return sendFile(c, res)
}

// ExportPresetHandler handles GET /reports/:preset/:format
func (h *ExportHandler) ExportPresetHandler(c echo.Context) error {
	ctx := c.Request().Context()
	filter, err := parseFilter(c)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid query parameters", err)
	}

	res, err := h.svc.ExportPreset(ctx, c.Param("preset"), c.Param("format"), filter)
	if err != nil {
		return h.exportError(c, err)
	}
	return sendFile(c, res)
}

// ExportSearchHandler handles GET /reports/search/:format
func (h *ExportHandler) ExportSearchHandler(c echo.Context) error {
	ctx := c.Request().Context()
	limit, err := queryInt(c, "limit")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid query parameters", err)
	}

	res, err := h.svc.ExportSearch(ctx, c.QueryParam("q"), c.Param("format"), limit)
	if err != nil {
		return h.exportError(c, err)
	}
	return sendFile(c, res)
}

// ListPresetsHandler handles GET /export/presets
func (h *ExportHandler) ListPresetsHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "presets retrieved", h.svc.Presets())
}

// HistoryHandler handles GET /export/history?section=&limit=
func (h *ExportHandler) HistoryHandler(c echo.Context) error {
	ctx := c.Request().Context()
	limit, err := queryInt(c, "limit")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid query parameters", err)
	}

	records, err := h.svc.History(ctx, c.QueryParam("section"), limit)
	if err != nil {
		return h.exportError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "export history retrieved", records)
}

func (h *ExportHandler) exportError(c echo.Context, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), "export request failed: %v", err)
	}
	return serviceutils.ResponseError(c, code, "export failed", err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reportexport.ErrEmptyInput),
		errors.Is(err, reportexport.ErrInvalidColumns),
		errors.Is(err, service.ErrUnknownPreset),
		errors.Is(err, service.ErrUnknownFormat),
		errors.Is(err, service.ErrNoDataSource):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSourceUnavailable),
		errors.Is(err, service.ErrAuditDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sendFile(c echo.Context, res *reportexport.Result) error {
	c.Response().Header().Set(echo.HeaderContentType, res.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(res.Bytes)))
	if res.Pages > 0 {
		c.Response().Header().Set("X-Page-Count", strconv.Itoa(res.Pages))
	}
	c.Response().WriteHeader(http.StatusOK)

	_, err := c.Response().Write(res.Bytes)
	return err
}

func parseFilter(c echo.Context) (domain.ReportFilter, error) {
	days, err := queryInt(c, "days")
	if err != nil {
		return domain.ReportFilter{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return domain.ReportFilter{}, err
	}
	return domain.ReportFilter{Category: c.QueryParam("category"), Days: days, Limit: limit}, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
