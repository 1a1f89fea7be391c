package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// LocalTenantID key del tenant resuelto por TenantMiddleware.
const LocalTenantID = "tenant_id"

// tenantFinder es el contrato mínimo que necesita el middleware. Lo implementa
// *postgres.UserRepo; la interfaz evita depender de infraestructura.
type tenantFinder interface {
	FindActiveBySubdomain(ctx context.Context, subdomain string) (*entity.User, error)
}

// TenantMiddleware resuelve el tenant de las rutas públicas por subdominio: header
// x-tenant-subdomain o query ?tenant=.
//
// Comportamiento:
//   - 400 TENANT_REQUIRED → no vino subdominio.
//   - 404 TENANT_NOT_FOUND → no existe o el usuario está inactivo.
//   - 500 → fallo al consultar la DB.
func TenantMiddleware(finder tenantFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subdomain := strings.TrimSpace(c.Get("x-tenant-subdomain"))
		if subdomain == "" {
			subdomain = strings.TrimSpace(c.Query("tenant"))
		}
		if subdomain == "" {
			return fail(c, fiber.StatusBadRequest, "TENANT_REQUIRED",
				"tenant no especificado: use el header x-tenant-subdomain o ?tenant=")
		}

		user, err := finder.FindActiveBySubdomain(c.UserContext(), strings.ToLower(subdomain))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return writeError(c, err)
		}
		if user == nil {
			return fail(c, fiber.StatusNotFound, "TENANT_NOT_FOUND", "tenant inexistente o inactivo")
		}
		c.Locals(LocalTenantID, user.ID)
		return c.Next()
	}
}

// GetTenantID devuelve el tenant resuelto por TenantMiddleware.
func GetTenantID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalTenantID).(int64)
	return id
}
