package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/repository"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBookingError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"conflict", &booking.ConflictError{FieldID: 1, Date: "2026-08-29"}, http.StatusConflict},
		{"not found", &booking.NotFoundError{Entity: "reserva", ID: 9}, http.StatusNotFound},
		{"stock", &booking.StockError{Equipment: "Balón", Total: 5, Loaned: 5, Requested: 1}, http.StatusBadRequest},
		{"validation", &booking.ValidationError{Field: "fecha_reserva", Reason: "es requerido"}, http.StatusBadRequest},
		{"state", &booking.InvalidStateError{Status: "reservada", Reason: "desconocido"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(t)
			handled, err := bookingError(c, tc.err)
			require.True(t, handled)
			require.NoError(t, err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, decodeBody(t, rec), "error")
		})
	}
}

func TestBookingError_NilPassesThrough(t *testing.T) {
	c, _ := newContext(t)
	handled, err := bookingError(c, nil)
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestBookingError_StockPayload(t *testing.T) {
	c, rec := newContext(t)
	serr := &booking.StockError{Equipment: "Chalecos", Total: 20, Loaned: 15, Available: 5, Requested: 7}
	handled, err := bookingError(c, serr)
	require.True(t, handled)
	require.NoError(t, err)

	body := decodeBody(t, rec)
	assert.Equal(t, "Stock insuficiente", body["error"])
	assert.EqualValues(t, 5, body["disponible"])
	assert.EqualValues(t, 7, body["solicitado"])
}

func TestRepoError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"no rows", sql.ErrNoRows, http.StatusNotFound},
		{"duplicate", repository.ErrDuplicate, http.StatusConflict},
		{"dependent rows", repository.ErrConflict, http.StatusConflict},
		{"foreign key", repository.ErrForeignKey, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(t)
			require.NoError(t, repoError(c, tc.err, "cancha"))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
