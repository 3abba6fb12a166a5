package sandbox

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain"
	pkgjwt "github.com/jhoicas/admin-console/pkg/jwt"
)

const tokenExpMinutes = 60

// authHandler maneja /auth/login y /auth/register.
type authHandler struct {
	store  *store
	secret string
	issuer string
}

func newAuthHandler(s *store, secret, issuer string) *authHandler {
	return &authHandler{store: s, secret: secret, issuer: issuer}
}

// Login verifica credenciales y devuelve un JWT firmado.
func (h *authHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "username y password son requeridos"})
	}
	user, ok := h.store.authenticate(in.Username, in.Password)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Credenciales inválidas"})
	}
	token, err := pkgjwt.Generate(h.secret, user.ID, user.Username, h.issuer, tokenExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{Token: token, Username: user.Username, Message: "Login exitoso"})
}

// Register crea una cuenta nueva.
func (h *authHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "username y password son requeridos"})
	}
	_, err := h.store.createUser(dto.UserPayload(in))
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "El usuario ya existe"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Usuario registrado"})
}
