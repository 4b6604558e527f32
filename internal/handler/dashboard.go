package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/booking"
)

// DashboardHandler serves the desk metrics: today's bookings, monthly
// revenue and average occupancy.
type DashboardHandler struct {
	Svc *booking.Service
}

func NewDashboardHandler(svc *booking.Service) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Today buckets today's reservations by estado.
func (h *DashboardHandler) Today(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Svc.ReservationsToday(ctx)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, st)
}

// MonthlyRevenue reports one month's income with growth against the prior
// month.  Query params mes and anio default to the current month.
func (h *DashboardHandler) MonthlyRevenue(c echo.Context) error {
	month, _ := strconv.Atoi(c.QueryParam("mes"))
	year, _ := strconv.Atoi(c.QueryParam("anio"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Svc.MonthlyRevenue(ctx, month, year)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, st)
}

// AverageOccupancy reports occupied hours against bookable hours over a
// trailing window.  Query param dias defaults to 7.
func (h *DashboardHandler) AverageOccupancy(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("dias"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Svc.AverageOccupancy(ctx, days)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, st)
}
