package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/exam-seating/internal/model"
	"github.com/iliyamo/exam-seating/internal/repository"
	"github.com/iliyamo/exam-seating/internal/service"
	"github.com/iliyamo/exam-seating/internal/session"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: rows failed gt", model.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("%w: H1-9-9", service.ErrSeatOutOfRange), http.StatusBadRequest},
		{repository.ErrHallNotFound, http.StatusNotFound},
		{repository.ErrCandidateNotFound, http.StatusNotFound},
		{session.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("insert hall: %w", repository.ErrConflict), http.StatusConflict},
		{session.ErrBusy, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			assert.NoError(t, writeError(c, nil, tc.err))
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = writeError(c, nil, errors.New("dial tcp 10.0.0.5:3306: refused"))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
	assert.NoError(t, Health(c))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestNewHandlers_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { NewSessionHandler(nil, nil) })
	assert.Panics(t, func() { NewRecordHandler(nil, nil, nil) })
}
