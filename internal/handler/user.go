package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/config"
	"github.com/golapp/field-booking/internal/model"
	"github.com/golapp/field-booking/internal/repository"
	"github.com/golapp/field-booking/internal/utils"
)

// UserHandler serves the usuario endpoints.  Password hashing happens here
// so the repository only ever stores bcrypt hashes; responses never carry
// the hash (json "-" on the model).
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type userReq struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
	Role     string `json:"rol"`
	Phone    string `json:"telefono"`
}

// List returns all usuarios.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return repoError(c, err, "usuario")
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one usuario.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario")
	}
	return c.JSON(http.StatusOK, u)
}

// Create registers a usuario.  The role defaults to cliente.
func (h *UserHandler) Create(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre, correo y contraseña son requeridos"})
	}
	role := strings.TrimSpace(req.Role)
	if role != model.RoleAdmin && role != model.RoleClient {
		role = model.RoleClient
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno del servidor"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
	}
	if err := h.Users.Create(ctx, u); err != nil {
		return repoError(c, err, "usuario")
	}
	return c.JSON(http.StatusCreated, u)
}

// Update overwrites a usuario.  An empty contrasena keeps the stored hash.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre y correo son requeridos"})
	}
	role := strings.TrimSpace(req.Role)
	if role != model.RoleAdmin && role != model.RoleClient {
		role = model.RoleClient
	}

	var hash string
	if req.Password != "" {
		hash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno del servidor"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.User{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
	}
	if err := h.Users.Update(ctx, u); err != nil {
		return repoError(c, err, "usuario")
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes a usuario.  Usuarios with reservations fail with 409.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return repoError(c, err, "usuario")
	}
	return c.NoContent(http.StatusNoContent)
}
