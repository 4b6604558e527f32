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

// FieldHandler serves the cancha endpoints.
type FieldHandler struct {
	Fields *repository.FieldRepo
}

func NewFieldHandler(f *repository.FieldRepo) *FieldHandler {
	return &FieldHandler{Fields: f}
}

type fieldReq struct {
	Name      string `json:"nombre_cancha"`
	Status    string `json:"estado"`
	TypeID    uint64 `json:"id_tipo"`
	Location  string `json:"ubicacion"`
	Capacity  int    `json:"capacidad"`
	OpenTime  string `json:"horario_inicio"`
	CloseTime string `json:"horario_fin"`
}

func (r *fieldReq) model(id uint64) (*model.Field, string) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, "nombre_cancha es requerido"
	}
	if r.TypeID == 0 {
		return nil, "id_tipo es requerido"
	}
	status := r.Status
	if status == "" {
		status = model.FieldAvailable
	}
	return &model.Field{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		Status:    status,
		TypeID:    r.TypeID,
		Location:  r.Location,
		Capacity:  r.Capacity,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
	}, ""
}

// List returns all canchas.
func (h *FieldHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fields, err := h.Fields.List(ctx)
	if err != nil {
		return repoError(c, err, "cancha")
	}
	return c.JSON(http.StatusOK, fields)
}

// Get returns one cancha.
func (h *FieldHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	field, err := h.Fields.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cancha")
	}
	return c.JSON(http.StatusOK, field)
}

// Create registers a cancha.
func (h *FieldHandler) Create(c echo.Context) error {
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	field, msg := req.model(0)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fields.Create(ctx, field); err != nil {
		return repoError(c, err, "cancha")
	}
	return c.JSON(http.StatusCreated, field)
}

// Update overwrites a cancha.
func (h *FieldHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	field, msg := req.model(id)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fields.Update(ctx, field); err != nil {
		return repoError(c, err, "cancha")
	}
	return c.JSON(http.StatusOK, field)
}

// Delete removes a cancha.  Canchas with reservations fail with 409.
func (h *FieldHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fields.Delete(ctx, id); err != nil {
		return repoError(c, err, "cancha")
	}
	return c.NoContent(http.StatusNoContent)
}
