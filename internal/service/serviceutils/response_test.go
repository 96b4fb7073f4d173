package serviceutils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResponseError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if assert.NoError(t, ResponseError(c, http.StatusBadRequest, "export failed", errors.New("no data to export"))) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"export failed","error":"no data to export"}`, rec.Body.String())
	}
}

func TestResponseSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if assert.NoError(t, ResponseSuccess(c, http.StatusOK, "ok", []string{"pdf"})) {
		assert.JSONEq(t, `{"success":true,"message":"ok","data":["pdf"]}`, rec.Body.String())
	}
}
