package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
)

// PublicMenuHandler carta pública del tenant resuelto por TenantMiddleware.
type PublicMenuHandler struct {
	uc *catalog.MenuUseCase
}

// NewPublicMenuHandler construye el handler.
func NewPublicMenuHandler(uc *catalog.MenuUseCase) *PublicMenuHandler {
	return &PublicMenuHandler{uc: uc}
}

// Get godoc
// @Summary      Menú público
// @Description  Solo contenido activo, ordenado por posición.
// @Tags         public
// @Produce      json
// @Param        id                  path    int     true   "ID del menú"
// @Param        x-tenant-subdomain  header  string  false  "Subdominio del tenant"
// @Param        tenant              query   string  false  "Subdominio del tenant (alternativa al header)"
// @Success      200  {object}  dto.MenuTreeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/menus/{id} [get]
func (h *PublicMenuHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.PublicTree(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
