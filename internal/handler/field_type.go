package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/model"
	"github.com/golapp/field-booking/internal/repository"
)

// FieldTypeHandler serves the tipo de cancha endpoints.  The tipo drives
// pricing and the automatic equipment quantities.
type FieldTypeHandler struct {
	Types *repository.FieldTypeRepo
}

func NewFieldTypeHandler(t *repository.FieldTypeRepo) *FieldTypeHandler {
	return &FieldTypeHandler{Types: t}
}

type fieldTypeReq struct {
	Label        string  `json:"tipo"`
	PricePerHour float64 `json:"precio"`
}

// List returns all tipos.
func (h *FieldTypeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Types.List(ctx)
	if err != nil {
		return repoError(c, err, "tipo de cancha")
	}
	return c.JSON(http.StatusOK, types)
}

// Get returns one tipo.
func (h *FieldTypeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ft, err := h.Types.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "tipo de cancha")
	}
	return c.JSON(http.StatusOK, ft)
}

// Create registers a tipo.
func (h *FieldTypeHandler) Create(c echo.Context) error {
	var req fieldTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if strings.TrimSpace(req.Label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipo es requerido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ft := &model.FieldType{Label: strings.TrimSpace(req.Label), PricePerHour: req.PricePerHour}
	if err := h.Types.Create(ctx, ft); err != nil {
		return repoError(c, err, "tipo de cancha")
	}
	return c.JSON(http.StatusCreated, ft)
}

// Update overwrites a tipo.
func (h *FieldTypeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req fieldTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if strings.TrimSpace(req.Label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipo es requerido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ft := &model.FieldType{ID: id, Label: strings.TrimSpace(req.Label), PricePerHour: req.PricePerHour}
	if err := h.Types.Update(ctx, ft); err != nil {
		return repoError(c, err, "tipo de cancha")
	}
	return c.JSON(http.StatusOK, ft)
}

// Delete removes a tipo.  Tipos still used by canchas fail with 409.
func (h *FieldTypeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Types.Delete(ctx, id); err != nil {
		return repoError(c, err, "tipo de cancha")
	}
	return c.NoContent(http.StatusNoContent)
}
