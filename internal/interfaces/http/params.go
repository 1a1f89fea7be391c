package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// idParam lee un id numérico positivo de la ruta.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id debe ser un entero positivo")
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
