package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/application/dto"
)

// MaxImportFileSize tope del CSV subido a /import-csv.
const MaxImportFileSize = 2 << 20

// MenuHandler maneja menús del tenant autenticado: CRUD, QR, PDF e importación CSV.
type MenuHandler struct {
	uc       *catalog.MenuUseCase
	importUC *catalog.ImportUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *catalog.MenuUseCase, importUC *catalog.ImportUseCase) *MenuHandler {
	return &MenuHandler{uc: uc, importUC: importUC}
}

// List godoc
// @Summary      Listar menús activos
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuListResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener menú con categorías, ítems e imágenes
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del menú"
// @Success      200  {object}  dto.MenuTreeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Tree(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear menú
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "Datos del menú"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar menú (parcial)
// @Description  Solo se aplican los campos presentes; logo, backgroundImage, color y pos aceptan null.
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "ID del menú"
// @Param        body  body  dto.MenuPatch  true  "Campos a modificar"
// @Success      200   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	var patch dto.MenuPatch
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
// @Summary      Desactivar menú
// @Tags         menus
// @Security     Bearer
// @Param        id   path  int  true  "ID del menú"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// QR godoc
// @Summary      QR del menú público
// @Description  Devuelve la imagen del proveedor o, si responde JSON, {targetUrl, providerResponse}.
// @Tags         menus
// @Security     Bearer
// @Produce      png
// @Produce      json
// @Param        id      path   int     true   "ID del menú"
// @Param        format  query  string  false  "png | svg | webp"  default(png)
// @Param        size    query  int     false  "128..1024"         default(512)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/qr [get]
func (h *MenuHandler) QR(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	req := dto.QRRequest{Format: c.Query("format")}
	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "INVALID_INPUT",
				fmt.Sprintf("size debe ser un entero entre %d y %d", catalog.MinQRSize, catalog.MaxQRSize))
		}
		req.Size = &size
	}

	img, target, err := h.uc.QR(c.UserContext(), GetUserID(c), id, req, publicMenuFallback(c))
	if err != nil {
		return writeError(c, err)
	}
	if img.IsJSON {
		return c.JSON(dto.QRJSONResponse{TargetURL: target, ProviderResponse: json.RawMessage(img.Body)})
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = catalog.DefaultQRFormat
	}
	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="menu-%d-qr.%s"`, id, format))
	return c.Send(img.Body)
}

// PDF godoc
// @Summary      Carta imprimible en PDF
// @Tags         menus
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del menú"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/pdf [get]
func (h *MenuHandler) PDF(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	doc, err := h.uc.PDF(c.UserContext(), GetUserID(c), id, publicMenuFallback(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="menu-%d.pdf"`, id))
	return c.Send(doc)
}

// ImportCSV godoc
// @Summary      Importar categorías e ítems desde CSV
// @Description  Columnas: type,categoryTitle,categoryActive,categoryPosition,itemTitle,itemDescription,itemPrice,itemActive,itemPosition.
// @Tags         menus
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id    path      int   true  "ID del menú"
// @Param        file  formData  file  true  "Archivo CSV (máx. 2 MB)"
// @Success      201   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/import-csv [post]
func (h *MenuHandler) ImportCSV(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return invalidID(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "FILE_REQUIRED", "subí un archivo CSV en el campo 'file'")
	}
	if fh.Size > MaxImportFileSize {
		return fail(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "el CSV no puede superar los 2 MB")
	}
	if !catalog.AcceptsCSVMime(fh.Header.Get(fiber.HeaderContentType)) {
		return fail(c, fiber.StatusBadRequest, "INVALID_FORMAT", "formato inválido, solo se aceptan archivos CSV")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("abrir CSV: %w", err))
	}
	defer f.Close()

	summary, err := h.importUC.Import(c.UserContext(), GetUserID(c), id, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// publicMenuFallback base del menú público armada con el host de la petición,
// para cuando PUBLIC_MENU_BASE_URL no está configurada.
func publicMenuFallback(c *fiber.Ctx) string {
	host := c.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Hostname()
	}
	if host == "" {
		return ""
	}
	proto := c.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = c.Protocol()
	}
	return proto + "://" + host + "/public/menu"
}
