package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/application/dto"
)

// ImageHandler galería de imágenes de un ítem.
type ImageHandler struct {
	uc *catalog.ImageUseCase
}

// NewImageHandler construye el handler.
func NewImageHandler(uc *catalog.ImageUseCase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// List godoc
// @Summary      Listar imágenes de un ítem
// @Tags         images
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ítem"
// @Success      200  {object}  dto.ImageListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/images [get]
func (h *ImageHandler) List(c *fiber.Ctx) error {
	itemID, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar imagen por URL
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del ítem"
// @Param        body  body  dto.CreateImageRequest  true  "url, alt, sortOrder"
// @Success      201   {object}  dto.ImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/images [post]
func (h *ImageHandler) Add(c *fiber.Ctx) error {
	itemID, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.CreateImageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar imagen
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "ID de la imagen"
// @Param        body  body  dto.ImagePatch  true  "url, alt, sortOrder, active"
// @Success      200   {object}  dto.ImageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/images/{id} [put]
func (h *ImageHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	var patch dto.ImagePatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar imagen
// @Tags         images
// @Security     Bearer
// @Param        id   path  int  true  "ID de la imagen"
// @Success      204
// @Router       /api/images/{id} [delete]
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
