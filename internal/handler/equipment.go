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

// EquipmentHandler serves the producto inventory endpoints.
type EquipmentHandler struct {
	Equipment *repository.EquipmentRepo
}

func NewEquipmentHandler(e *repository.EquipmentRepo) *EquipmentHandler {
	return &EquipmentHandler{Equipment: e}
}

type equipmentReq struct {
	Name          string `json:"nombre_producto"`
	TotalQuantity int    `json:"cantidad_total"`
}

func (r *equipmentReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "nombre_producto es requerido"
	}
	if r.TotalQuantity < 0 {
		return "cantidad_total no puede ser negativa"
	}
	return ""
}

// List returns every producto with its derived stock numbers.
func (h *EquipmentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Equipment.List(ctx)
	if err != nil {
		return repoError(c, err, "producto")
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one producto with its stock numbers.
func (h *EquipmentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Equipment.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "producto")
	}
	return c.JSON(http.StatusOK, item)
}

// Create registers a producto.
func (h *EquipmentHandler) Create(c echo.Context) error {
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := &model.Equipment{Name: strings.TrimSpace(req.Name), TotalQuantity: req.TotalQuantity}
	if err := h.Equipment.Create(ctx, item); err != nil {
		return repoError(c, err, "producto")
	}
	return c.JSON(http.StatusCreated, item)
}

// Update overwrites a producto.
func (h *EquipmentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := &model.Equipment{ID: id, Name: strings.TrimSpace(req.Name), TotalQuantity: req.TotalQuantity}
	if err := h.Equipment.Update(ctx, item); err != nil {
		return repoError(c, err, "producto")
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a producto.
func (h *EquipmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Equipment.Delete(ctx, id); err != nil {
		return repoError(c, err, "producto")
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats totals the inventory for the dashboard cards.
func (h *EquipmentHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Equipment.Stats(ctx)
	if err != nil {
		return repoError(c, err, "producto")
	}
	return c.JSON(http.StatusOK, st)
}
