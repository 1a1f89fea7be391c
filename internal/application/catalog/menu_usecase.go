package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// Parámetros del QR del menú público.
const (
	DefaultQRFormat = "png"
	DefaultQRSize   = 512
	MinQRSize       = 128
	MaxQRSize       = 1024
)

var qrFormats = map[string]bool{"png": true, "svg": true, "webp": true}

// MenuConfig valores de configuración que usa MenuUseCase.
type MenuConfig struct {
	DefaultLogoURL string // logo de un menú nuevo sin logo propio
	PublicBaseURL  string // base del menú público; vacío = la arma el handler con el host
}

// MenuUseCase casos de uso de menús: CRUD del tenant, árbol público, QR y PDF.
type MenuUseCase struct {
	repos Repos
	qr    QRGenerator
	pdf   MenuPDFGenerator
	cfg   MenuConfig
	log   zerolog.Logger
}

// NewMenuUseCase construye el caso de uso. qr y pdf pueden ser nil si la instancia no los expone.
func NewMenuUseCase(repos Repos, qr QRGenerator, pdf MenuPDFGenerator, cfg MenuConfig, log zerolog.Logger) *MenuUseCase {
	return &MenuUseCase{repos: repos, qr: qr, pdf: pdf, cfg: cfg, log: log}
}

// List menús activos del tenant ordenados por id.
func (uc *MenuUseCase) List(ctx context.Context, userID int64) (*dto.MenuListResponse, error) {
	menus, err := uc.repos.Menus.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.MenuListResponse{Items: make([]dto.MenuResponse, 0, len(menus))}
	for _, m := range menus {
		out.Items = append(out.Items, *toMenuResponse(m))
	}
	return out, nil
}

// Get datos básicos de un menú del tenant.
func (uc *MenuUseCase) Get(ctx context.Context, userID, menuID int64) (*dto.MenuResponse, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	return toMenuResponse(menu), nil
}

// Tree menú del tenant con toda su jerarquía (incluye elementos inactivos).
func (uc *MenuUseCase) Tree(ctx context.Context, userID, menuID int64) (*dto.MenuTreeResponse, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	tree, err := uc.loadTree(ctx, menu, false)
	if err != nil {
		return nil, err
	}
	return toMenuTreeResponse(tree), nil
}

// PublicTree menú publicado de un tenant: solo menú, categorías, ítems e imágenes activos.
func (uc *MenuUseCase) PublicTree(ctx context.Context, tenantID, menuID int64) (*dto.MenuTreeResponse, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, tenantID)
	if err != nil {
		return nil, err
	}
	if !menu.Active {
		return nil, domain.ErrNotFound
	}
	tree, err := uc.loadTree(ctx, menu, true)
	if err != nil {
		return nil, err
	}
	return toMenuTreeResponse(tree), nil
}

// Create crea un menú. Sin logo se usa el logo por defecto configurado.
func (uc *MenuUseCase) Create(ctx context.Context, userID int64, in dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	title, err := requiredText("title", in.Title, maxMenuTitle)
	if err != nil {
		return nil, err
	}
	logo, err := optionalURL("logo", in.Logo)
	if err != nil {
		return nil, err
	}
	background, err := optionalURL("backgroundImage", in.BackgroundImage)
	if err != nil {
		return nil, err
	}
	color, err := menuColor(in.Color)
	if err != nil {
		return nil, err
	}
	pos, err := optionalText("pos", in.Pos, maxPos)
	if err != nil {
		return nil, err
	}
	if logo == nil && uc.cfg.DefaultLogoURL != "" {
		def := uc.cfg.DefaultLogoURL
		logo = &def
	}

	now := time.Now()
	menu := &entity.Menu{
		UserID:          userID,
		Title:           title,
		Active:          boolOr(in.Active, true),
		Logo:            logo,
		BackgroundImage: background,
		Color:           color,
		Pos:             pos,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repos.Menus.Create(ctx, menu); err != nil {
		return nil, err
	}
	return toMenuResponse(menu), nil
}

// Update aplica un patch parcial. Un patch sin campos no escribe nada.
func (uc *MenuUseCase) Update(ctx context.Context, userID, menuID int64, patch dto.MenuPatch) (*dto.MenuResponse, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return toMenuResponse(menu), nil
	}

	if patch.Title != nil {
		if menu.Title, err = requiredText("title", *patch.Title, maxMenuTitle); err != nil {
			return nil, err
		}
	}
	if patch.Active != nil {
		menu.Active = *patch.Active
	}
	if patch.Logo.Set && patch.Logo.Value != nil {
		// Un logo vacío no borra el actual: el menú siempre conserva su imagen.
		logo, err := optionalURL("logo", patch.Logo.Value)
		if err != nil {
			return nil, err
		}
		if logo != nil {
			menu.Logo = logo
		}
	}
	if patch.BackgroundImage.Set && patch.BackgroundImage.Value != nil {
		bg, err := optionalURL("backgroundImage", patch.BackgroundImage.Value)
		if err != nil {
			return nil, err
		}
		if bg != nil {
			menu.BackgroundImage = bg
		}
	}
	if patch.Color.Set {
		if menu.Color, err = menuColor(patch.Color.Value); err != nil {
			return nil, err
		}
	}
	if patch.Pos.Set {
		if menu.Pos, err = optionalText("pos", patch.Pos.Value, maxPos); err != nil {
			return nil, err
		}
	}

	menu.UpdatedAt = time.Now()
	if err := uc.repos.Menus.Update(ctx, menu); err != nil {
		return nil, err
	}
	return toMenuResponse(menu), nil
}

// Delete baja lógica (active=false). Categorías e ítems quedan intactos.
func (uc *MenuUseCase) Delete(ctx context.Context, userID, menuID int64) error {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return err
	}
	return uc.repos.Menus.SetActive(ctx, menu.ID, false)
}

// PublicURL URL del menú público que codifica el QR. fallbackBase se usa cuando no hay
// PUBLIC_MENU_BASE_URL configurada.
func (uc *MenuUseCase) PublicURL(menuID int64, fallbackBase string) (string, error) {
	base := uc.cfg.PublicBaseURL
	if base == "" {
		base = fallbackBase
	}
	return BuildPublicMenuURL(base, menuID)
}

// BuildPublicMenuURL agrega ?id=<menuID> a la base absoluta.
func BuildPublicMenuURL(base string, menuID int64) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("no se pudo resolver el host público del menú")
	}
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() {
		return "", fmt.Errorf("la base del menú público debe ser una URL absoluta: %q", base)
	}
	q := u.Query()
	q.Set("id", strconv.FormatInt(menuID, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// QR pide al proveedor el código QR que apunta al menú público.
func (uc *MenuUseCase) QR(ctx context.Context, userID, menuID int64, req dto.QRRequest, fallbackBase string) (*QRImage, string, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = DefaultQRFormat
	}
	if !qrFormats[format] {
		return nil, "", invalid("formato inválido, permitidos: png, svg, webp")
	}
	size := DefaultQRSize
	if req.Size != nil {
		if *req.Size < MinQRSize || *req.Size > MaxQRSize {
			return nil, "", invalid("size debe ser un entero entre %d y %d", MinQRSize, MaxQRSize)
		}
		size = *req.Size
	}

	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, "", err
	}
	target, err := uc.PublicURL(menu.ID, fallbackBase)
	if err != nil {
		return nil, "", err
	}
	if uc.qr == nil {
		return nil, "", fmt.Errorf("generador de QR no configurado")
	}
	img, err := uc.qr.Generate(ctx, target, format, size)
	if err != nil {
		uc.log.Warn().Err(err).Int64("menu_id", menu.ID).Msg("falló la generación del QR")
		return nil, "", err
	}
	return img, target, nil
}

// PDF carta imprimible con las categorías e ítems activos y el QR del menú público.
func (uc *MenuUseCase) PDF(ctx context.Context, userID, menuID int64, fallbackBase string) ([]byte, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	target, err := uc.PublicURL(menu.ID, fallbackBase)
	if err != nil {
		return nil, err
	}
	tree, err := uc.loadTree(ctx, menu, true)
	if err != nil {
		return nil, err
	}
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}

	printable := dto.PrintableMenu{Title: menu.Title, PublicURL: target}
	for _, ct := range tree.Categories {
		pc := dto.PrintableCategory{Title: ct.Category.Title}
		for _, it := range ct.Items {
			desc := ""
			if it.Item.Description != nil {
				desc = *it.Item.Description
			}
			pc.Items = append(pc.Items, dto.PrintableItem{
				Title:       it.Item.Title,
				Description: desc,
				Price:       it.Item.Price,
			})
		}
		printable.Categories = append(printable.Categories, pc)
	}
	return uc.pdf.Generate(printable)
}

// loadTree arma menú -> categorías (por posición) -> ítems (por posición) -> imágenes.
func (uc *MenuUseCase) loadTree(ctx context.Context, menu *entity.Menu, activeOnly bool) (*entity.MenuTree, error) {
	categories, err := uc.repos.Categories.ListByMenu(ctx, menu.ID, activeOnly)
	if err != nil {
		return nil, err
	}
	tree := &entity.MenuTree{Menu: menu, Categories: make([]*entity.CategoryTree, 0, len(categories))}

	var itemIDs []int64
	for _, c := range categories {
		items, err := uc.repos.Items.ListByCategory(ctx, c.ID, activeOnly)
		if err != nil {
			return nil, err
		}
		ct := &entity.CategoryTree{Category: c, Items: make([]*entity.ItemWithImages, 0, len(items))}
		for _, it := range items {
			ct.Items = append(ct.Items, &entity.ItemWithImages{Item: it})
			itemIDs = append(itemIDs, it.ID)
		}
		tree.Categories = append(tree.Categories, ct)
	}
	if len(itemIDs) == 0 {
		return tree, nil
	}

	images, err := uc.repos.Images.ListByItems(ctx, itemIDs, activeOnly)
	if err != nil {
		return nil, err
	}
	byItem := groupImages(images)
	for _, ct := range tree.Categories {
		for _, it := range ct.Items {
			it.Images = byItem[it.Item.ID]
		}
	}
	return tree, nil
}
