package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/model"
	"github.com/golapp/field-booking/internal/repository"
)

// LoanHandler serves the equipment loan endpoints.  Creation goes through
// the booking core so the stock check and the insert stay transactional;
// listing and maintenance use the repository directly.
type LoanHandler struct {
	Svc   *booking.Service
	Loans *repository.LoanRepo
}

func NewLoanHandler(svc *booking.Service, loans *repository.LoanRepo) *LoanHandler {
	return &LoanHandler{Svc: svc, Loans: loans}
}

type loanReq struct {
	ReservationID uint64 `json:"id_reserva"`
	EquipmentID   uint64 `json:"id_producto"`
	Quantity      int    `json:"cantidad_prestada"`
	Status        string `json:"estado"`
}

// Create hands out equipment against a reservation, stock-checked.
func (h *LoanHandler) Create(c echo.Context) error {
	var req loanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loan, err := h.Svc.CreateLoan(ctx, req.ReservationID, req.EquipmentID, req.Quantity)
	if handled, resp := bookingError(c, err); handled {
		return resp
	}
	return c.JSON(http.StatusCreated, loan)
}

// List returns every prestamo enriched for display.  Query param estado
// filters by status when present.
func (h *LoanHandler) List(c echo.Context) error {
	status := c.QueryParam("estado")
	if status != "" {
		if err := booking.ValidateLoanStatus(status); err != nil {
			if handled, resp := bookingError(c, err); handled {
				return resp
			}
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loans, err := h.Loans.List(ctx, status)
	if err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.JSON(http.StatusOK, loans)
}

// Get returns one prestamo enriched for display.
func (h *LoanHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loan, err := h.Loans.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.JSON(http.StatusOK, loan)
}

// Update overwrites the mutable fields of a prestamo.
func (h *LoanHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req loanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if req.Status != "" {
		if err := booking.ValidateLoanStatus(req.Status); err != nil {
			if handled, resp := bookingError(c, err); handled {
				return resp
			}
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loan := &model.Loan{
		ID:            id,
		ReservationID: req.ReservationID,
		EquipmentID:   req.EquipmentID,
		Quantity:      req.Quantity,
		Status:        req.Status,
	}
	if err := h.Loans.Update(ctx, loan); err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.JSON(http.StatusOK, loan)
}

type loanStatusReq struct {
	Status string `json:"estado"`
}

// UpdateStatus moves a prestamo through the loan lifecycle (devuelto,
// vencido, perdido, dañado).
func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req loanStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if err := booking.ValidateLoanStatus(req.Status); err != nil {
		if handled, resp := bookingError(c, err); handled {
			return resp
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Loans.UpdateStatus(ctx, id, req.Status); err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "estado": req.Status})
}

// Delete removes a prestamo.
func (h *LoanHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Loans.Delete(ctx, id); err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats counts prestamos per estado.
func (h *LoanHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Loans.StatusStats(ctx)
	if err != nil {
		return repoError(c, err, "préstamo")
	}
	return c.JSON(http.StatusOK, stats)
}
