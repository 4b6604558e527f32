// Package handler contains the HTTP handlers.  Handlers stay thin: they
// bind and validate transport concerns, call into the booking core or a
// repository, and translate domain errors to status codes.
package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/repository"
)

// parseID reads the numeric :id route parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// bookingError translates booking core errors to HTTP responses.  Returns
// false when err is nil so callers can fall through to the success path.
func bookingError(c echo.Context, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	var verr *booking.ValidationError
	var cerr *booking.ConflictError
	var nerr *booking.NotFoundError
	var serr *booking.StockError
	var ierr *booking.InvalidStateError
	switch {
	case errors.As(err, &cerr):
		return true, c.JSON(http.StatusConflict, echo.Map{
			"error":      "La cancha ya está reservada en ese horario",
			"conflictos": cerr.Conflicting,
		})
	case errors.As(err, &nerr):
		return true, c.JSON(http.StatusNotFound, echo.Map{"error": nerr.Error()})
	case errors.As(err, &serr):
		return true, c.JSON(http.StatusBadRequest, echo.Map{
			"error":      "Stock insuficiente",
			"total":      serr.Total,
			"prestado":   serr.Loaned,
			"disponible": serr.Available,
			"solicitado": serr.Requested,
		})
	case errors.As(err, &verr):
		return true, c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	case errors.As(err, &ierr):
		return true, c.JSON(http.StatusBadRequest, echo.Map{"error": ierr.Error()})
	}
	return true, c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno del servidor"})
}

// repoError translates repository errors for the plain CRUD handlers.
func repoError(c echo.Context, err error, entity string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " no encontrado"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "registro duplicado"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "existen registros dependientes"})
	case errors.Is(err, repository.ErrForeignKey):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referencia inválida"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno del servidor"})
}
