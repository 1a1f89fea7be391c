package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// Lo no reconocido sale como 500 INTERNAL sin filtrar el detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	var qrErr *catalog.QRProviderError
	switch {
	case errors.As(err, &qrErr):
		if qrErr.ClientError() {
			return fail(c, fiber.StatusBadRequest, "QR_REJECTED", qrErr.Error())
		}
		return fail(c, fiber.StatusBadGateway, "QR_PROVIDER", qrErr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrCategoryMove):
		return fail(c, fiber.StatusBadRequest, "CATEGORY_MOVE", err.Error())
	case errors.Is(err, domain.ErrEmptyImport):
		return fail(c, fiber.StatusBadRequest, "EMPTY_IMPORT", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
