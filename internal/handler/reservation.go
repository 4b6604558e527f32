package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/repository"
)

// ReservationHandler serves the booking endpoints.  Writes go through the
// booking core; reads come from the enriched repository view.
type ReservationHandler struct {
	Svc     *booking.Service
	Details *repository.ReservationRepo
}

func NewReservationHandler(svc *booking.Service, details *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Details: details}
}

type reservationReq struct {
	FieldID       uint64 `json:"id_cancha"`
	UserID        uint64 `json:"id_usuario"`
	Date          string `json:"fecha_reserva"`
	StartTime     string `json:"hora_inicio"`
	EndTime       string `json:"hora_fin"`
	Status        string `json:"estado"`
	Notes         string `json:"observaciones"`
	CustomerPhone string `json:"telefono_cliente"`
}

func (r *reservationReq) input() booking.ReservationInput {
	return booking.ReservationInput{
		FieldID:       r.FieldID,
		UserID:        r.UserID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		Notes:         r.Notes,
		CustomerPhone: r.CustomerPhone,
	}
}

// resultPayload shapes a create/update response.  Equipment keys only show
// up when the operation confirmed the reservation.
func resultPayload(res *booking.ReservationResult) echo.Map {
	out := echo.Map{"reserva": res.Reservation}
	if len(res.Loans) > 0 {
		out["implementos_asignados"] = res.Loans
	}
	if len(res.Warnings) > 0 {
		out["errores_implementos"] = res.Warnings
	}
	return out
}

// Create registers a reservation.  New bookings default to pendiente; a
// booking created directly as confirmada also reports its equipment loans.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.CreateReservation(ctx, req.input())
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusCreated, resultPayload(res))
}

// List returns every reservation with its cancha, cliente and total price.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Details.ListAll(ctx)
	if err != nil {
		return repoError(c, err, "reserva")
	}
	return c.JSON(http.StatusOK, details)
}

// Get returns one reservation enriched for display.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Details.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "reserva")
	}
	return c.JSON(http.StatusOK, detail)
}

// Update edits a reservation.  A transition into confirmada triggers the
// equipment allocation and reports the loans in the response.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.UpdateReservation(ctx, id, req.input())
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, resultPayload(res))
}

// Cancel moves a reservation to cancelada, freeing its slot.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.CancelReservation(ctx, id)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, echo.Map{"reserva": res})
}

// Delete removes a reservation outright.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.DeleteReservation(ctx, id); err != nil {
		if handled, resp := bookingError(c, err); handled {
			return resp
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// OccupiedSlots lists the taken intervals for a cancha on a date, for the
// frontend day grid.  Query params: id_cancha, fecha (YYYY-MM-DD).
func (h *ReservationHandler) OccupiedSlots(c echo.Context) error {
	fieldID, err := strconv.ParseUint(c.QueryParam("id_cancha"), 10, 64)
	if err != nil || fieldID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_cancha es requerido"})
	}
	date := c.QueryParam("fecha")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fecha es requerida"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Svc.OccupiedSlots(ctx, fieldID, date)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cancha_id":         fieldID,
		"fecha":             date,
		"horarios_ocupados": slots,
	})
}
