package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/model"
	"github.com/golapp/field-booking/internal/repository"
)

// RateHandler serves the tarifa endpoints.  Tarifas are the legacy
// per-cancha price bands; current pricing lives on the tipo de cancha.
type RateHandler struct {
	Rates *repository.RateRepo
}

func NewRateHandler(r *repository.RateRepo) *RateHandler {
	return &RateHandler{Rates: r}
}

type rateReq struct {
	FieldID   uint64  `json:"id_cancha"`
	Price     float64 `json:"precio"`
	StartTime string  `json:"hora_inicio"`
	EndTime   string  `json:"hora_fin"`
}

// List returns all tarifas, filtered by id_cancha when the query param is
// present.
func (h *RateHandler) List(c echo.Context) error {
	fieldID, _ := strconv.ParseUint(c.QueryParam("id_cancha"), 10, 64)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rates, err := h.Rates.List(ctx, fieldID)
	if err != nil {
		return repoError(c, err, "tarifa")
	}
	return c.JSON(http.StatusOK, rates)
}

// Get returns one tarifa.
func (h *RateHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rate, err := h.Rates.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "tarifa")
	}
	return c.JSON(http.StatusOK, rate)
}

// Create registers a tarifa.
func (h *RateHandler) Create(c echo.Context) error {
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if req.FieldID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_cancha es requerido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rate := &model.Rate{FieldID: req.FieldID, Price: req.Price, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := h.Rates.Create(ctx, rate); err != nil {
		return repoError(c, err, "tarifa")
	}
	return c.JSON(http.StatusCreated, rate)
}

// Update overwrites a tarifa.
func (h *RateHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rate := &model.Rate{ID: id, FieldID: req.FieldID, Price: req.Price, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := h.Rates.Update(ctx, rate); err != nil {
		return repoError(c, err, "tarifa")
	}
	return c.JSON(http.StatusOK, rate)
}

// Delete removes a tarifa.
func (h *RateHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rates.Delete(ctx, id); err != nil {
		return repoError(c, err, "tarifa")
	}
	return c.NoContent(http.StatusNoContent)
}
