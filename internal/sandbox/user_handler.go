package sandbox

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain"
)

// userHandler CRUD de /api/usuarios.
type userHandler struct {
	store *store
}

func newUserHandler(s *store) *userHandler {
	return &userHandler{store: s}
}

// List devuelve todos los usuarios (sin contraseña).
func (h *userHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.listUsers())
}

// Create alta de usuario; username y password obligatorios.
func (h *userHandler) Create(c *fiber.Ctx) error {
	var in dto.UserPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "username y password son requeridos"})
	}
	out, err := h.store.createUser(in)
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "El usuario ya existe"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update modifica un usuario; password vacío la conserva.
func (h *userHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "id inválido"})
	}
	var in dto.UserPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
	}
	out, err := h.store.updateUser(int64(id), in)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "El usuario ya existe"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete baja de usuario.
func (h *userHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "id inválido"})
	}
	if err := h.store.deleteUser(int64(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "usuario no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
