package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
)

// AdminHandler mantenimiento del orden de los menús (solo rol admin).
type AdminHandler struct {
	uc *catalog.MaintenanceUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *catalog.MaintenanceUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Rebalance godoc
// @Summary      Renumerar posiciones de un menú
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id              path   int   true   "ID del menú"
// @Param        categoriesOnly  query  bool  false  "Solo categorías"
// @Success      200  {object}  dto.RebalanceSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/menus/{id}/rebalance [post]
func (h *AdminHandler) Rebalance(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.RebalanceMenu(c.UserContext(), id, c.QueryBool("categoriesOnly", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
