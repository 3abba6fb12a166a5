package sandbox

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-console/internal/application/dto"
)

// productHandler CRUD de /api/productos.
type productHandler struct {
	store *store
}

func newProductHandler(s *store) *productHandler {
	return &productHandler{store: s}
}

// List devuelve todos los productos.
func (h *productHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.listProducts())
}

// Create alta de producto.
func (h *productHandler) Create(c *fiber.Ctx) error {
	in, ok := parseProduct(c)
	if !ok {
		return nil
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.createProduct(in))
}

// Update reemplaza los campos de un producto.
func (h *productHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "id inválido"})
	}
	in, ok := parseProduct(c)
	if !ok {
		return nil
	}
	out, err := h.store.updateProduct(int64(id), in)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete baja de producto.
func (h *productHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "id inválido"})
	}
	if err := h.store.deleteProduct(int64(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "producto no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProduct valida el cuerpo; si no es válido ya escribió la respuesta 400.
func parseProduct(c *fiber.Ctx) (dto.ProductPayload, bool) {
	var in dto.ProductPayload
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "cuerpo inválido"})
		return in, false
	}
	if in.Nombre == "" || in.Categoria == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "nombre y categoria son requeridos"})
		return in, false
	}
	if in.Precio < 0 || in.Stock < 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "precio y stock no pueden ser negativos"})
		return in, false
	}
	return in, true
}
