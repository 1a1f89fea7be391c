package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/application/dto"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/domain"
)

const (
	owner    int64 = 1
	stranger int64 = 2
)

type fakePDF struct {
	menu dto.PrintableMenu
}

func (f *fakePDF) Generate(menu dto.PrintableMenu) ([]byte, error) {
	f.menu = menu
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store       *memStore
	menus       *catalog.MenuUseCase
	categories  *catalog.CategoryUseCase
	items       *catalog.ItemUseCase
	images      *catalog.ImageUseCase
	imports     *catalog.ImportUseCase
	maintenance *catalog.MaintenanceUseCase
	qr          *fakeQR
	pdf         *fakePDF
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	repos := store.repos()
	catPositions := appordering.NewPositionService(appordering.GroupCategories, nil, zerolog.Nop())
	itemPositions := appordering.NewPositionService(appordering.GroupItems, nil, zerolog.Nop())
	qr := &fakeQR{img: &catalog.QRImage{ContentType: "image/png", Body: []byte{0x89, 'P', 'N', 'G'}}}
	pdf := &fakePDF{}
	return &fixture{
		store:       store,
		menus:       catalog.NewMenuUseCase(repos, qr, pdf, catalog.MenuConfig{DefaultLogoURL: "https://cdn.example.com/logo.png"}, zerolog.Nop()),
		categories:  catalog.NewCategoryUseCase(repos, store, catPositions),
		items:       catalog.NewItemUseCase(repos, store, itemPositions),
		images:      catalog.NewImageUseCase(repos, store),
		imports:     catalog.NewImportUseCase(repos, store, catPositions, itemPositions, nil, zerolog.Nop()),
		maintenance: catalog.NewMaintenanceUseCase(repos, store, catPositions, itemPositions),
		qr:          qr,
		pdf:         pdf,
	}
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Categorías
// ---------------------------------------------------------------------------

func TestCategoryCreate_AgregaAlFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)

	for _, title := range []string{"Entradas", "Pizzas", "Postres"} {
		_, err := f.categories.Create(ctx, owner, dto.CreateCategoryRequest{MenuID: menuID, Title: title})
		require.NoError(t, err)
	}

	want := []titled{{"Entradas", 10000}, {"Pizzas", 20000}, {"Postres", 30000}}
	if diff := cmp.Diff(want, f.store.categoriesOf(menuID)); diff != "" {
		t.Errorf("categorías (-want +got):\n%s", diff)
	}
}

func TestCategoryCreate_MenuAjenoOInactivoEsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foreign := f.store.addMenu(stranger, true)
	inactive := f.store.addMenu(owner, false)

	_, err := f.categories.Create(ctx, owner, dto.CreateCategoryRequest{MenuID: foreign, Title: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.categories.Create(ctx, owner, dto.CreateCategoryRequest{MenuID: inactive, Title: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.categories.Create(ctx, owner, dto.CreateCategoryRequest{MenuID: 999, Title: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.store.categoriesOf(foreign))
}

func TestCategoryCreate_TituloObligatorio(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)

	_, err := f.categories.Create(context.Background(), owner, dto.CreateCategoryRequest{MenuID: menuID, Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_NuevaPosicionConGapAgotadoRebalancea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	f.store.addCategory(menuID, "A", 100)
	f.store.addCategory(menuID, "B", 101)
	c := f.store.addCategory(menuID, "C", 102)

	out, err := f.categories.Update(ctx, owner, c, dto.CategoryPatch{NewPosition: ptr(100.0)})
	require.NoError(t, err)

	assert.Equal(t, int64(15000), out.Position)
	want := []titled{{"A", 10000}, {"C", 15000}, {"B", 20000}}
	if diff := cmp.Diff(want, f.store.categoriesOf(menuID)); diff != "" {
		t.Errorf("categorías (-want +got):\n%s", diff)
	}
	assert.Zero(t, f.store.categoryUpdates, "solo cambió la posición")
}

func TestCategoryUpdate_PatchVacioNoEscribe(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)
	c := f.store.addCategory(menuID, "A", 10000)

	out, err := f.categories.Update(context.Background(), owner, c, dto.CategoryPatch{})
	require.NoError(t, err)
	assert.Equal(t, "A", out.Title)
	assert.Zero(t, f.store.categoryUpdates)
}

func TestCategoryUpdate_DeOtroTenantEsNotFound(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(stranger, true)
	c := f.store.addCategory(menuID, "A", 10000)

	_, err := f.categories.Update(context.Background(), owner, c, dto.CategoryPatch{Title: ptr("B")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDelete_BorraItemsEImagenesSinRenumerar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	a := f.store.addCategory(menuID, "A", 10000)
	b := f.store.addCategory(menuID, "B", 20000)
	f.store.addCategory(menuID, "C", 30000)
	it := f.store.addItem(b, "Muzza", 10000)
	f.store.addImage(it, "https://cdn.example.com/m.png", 0)
	keep := f.store.addItem(a, "Fugazza", 10000)
	f.store.addImage(keep, "https://cdn.example.com/f.png", 0)

	require.NoError(t, f.categories.Delete(ctx, owner, b))

	assert.Equal(t, []titled{{"A", 10000}, {"C", 30000}}, f.store.categoriesOf(menuID))
	assert.Empty(t, f.store.itemsOf(b))
	assert.Len(t, f.store.images, 1)
}

// ---------------------------------------------------------------------------
// Ítems
// ---------------------------------------------------------------------------

func TestItemCreate_TresItemsEnCategoriaVacia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)

	for _, title := range []string{"Muzza", "Napo", "Fugazzeta"} {
		_, err := f.items.Create(ctx, owner, dto.CreateItemRequest{CategoryID: pizzas, Title: title})
		require.NoError(t, err)
	}

	want := []titled{{"Muzza", 10000}, {"Napo", 20000}, {"Fugazzeta", 30000}}
	assert.Equal(t, want, f.store.itemsOf(pizzas))
}

func TestItemUpdate_MoverEntreHermanos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)
	f.store.addItem(pizzas, "Muzza", 10000)
	f.store.addItem(pizzas, "Napo", 20000)
	third := f.store.addItem(pizzas, "Fugazzeta", 30000)

	out, err := f.items.Update(ctx, owner, third, dto.ItemPatch{NewPosition: ptr(15000.0)})
	require.NoError(t, err)

	assert.Equal(t, int64(15000), out.Position)
	want := []titled{{"Muzza", 10000}, {"Fugazzeta", 15000}, {"Napo", 20000}}
	if diff := cmp.Diff(want, f.store.itemsOf(pizzas)); diff != "" {
		t.Errorf("ítems (-want +got):\n%s", diff)
	}
}

func TestItemUpdate_OtraCategoriaSeRechaza(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)
	bebidas := f.store.addCategory(menuID, "Bebidas", 20000)
	it := f.store.addItem(pizzas, "Muzza", 10000)

	_, err := f.items.Update(context.Background(), owner, it, dto.ItemPatch{CategoryID: ptr(bebidas), Title: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrCategoryMove)
	assert.Equal(t, []titled{{"Muzza", 10000}}, f.store.itemsOf(pizzas))

	// Misma categoría: se acepta.
	_, err = f.items.Update(context.Background(), owner, it, dto.ItemPatch{CategoryID: ptr(pizzas)})
	assert.NoError(t, err)
}

func TestItemUpdate_DescripcionNullLimpiaYPrecioSeRedondea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)
	created, err := f.items.Create(ctx, owner, dto.CreateItemRequest{
		CategoryID:  pizzas,
		Title:       "Muzza",
		Description: ptr("Con aceitunas"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Description)

	out, err := f.items.Update(ctx, owner, created.ID, dto.ItemPatch{
		Description: dto.Null[string](),
		Price:       dto.SetTo(decimal.RequireFromString("12.345")),
	})
	require.NoError(t, err)
	assert.Nil(t, out.Description)
	require.NotNil(t, out.Price)
	assert.Equal(t, "12.35", out.Price.StringFixed(2))
	assert.Equal(t, 1, f.store.itemUpdates)
}

func TestItemUpdate_SoloPosicionNoReescribeCampos(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)
	it := f.store.addItem(pizzas, "Muzza", 10000)

	_, err := f.items.Update(context.Background(), owner, it, dto.ItemPatch{NewPosition: ptr(-50.0)})
	require.NoError(t, err)
	assert.Zero(t, f.store.itemUpdates)
	assert.Equal(t, []titled{{"Muzza", 10000}}, f.store.itemsOf(pizzas), "único hermano: punto medio de [0, 2*gap]")
}

func TestItemCreate_PrecioNegativoInvalido(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)
	pizzas := f.store.addCategory(menuID, "Pizzas", 10000)

	_, err := f.items.Create(context.Background(), owner, dto.CreateItemRequest{
		CategoryID: pizzas,
		Title:      "Muzza",
		Price:      ptr(decimal.NewFromInt(-1)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.itemsOf(pizzas))
}

func TestItemList_SoloDelTenantConImagenes(t *testing.T) {
	f := newFixture(t)
	mine := f.store.addMenu(owner, true)
	theirs := f.store.addMenu(stranger, true)
	c1 := f.store.addCategory(mine, "A", 10000)
	c2 := f.store.addCategory(theirs, "B", 10000)
	it := f.store.addItem(c1, "Mío", 10000)
	f.store.addItem(c2, "Ajeno", 10000)
	f.store.addImage(it, "https://cdn.example.com/2.png", 2)
	f.store.addImage(it, "https://cdn.example.com/1.png", 1)

	out, err := f.items.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Mío", out.Items[0].Title)
	require.Len(t, out.Items[0].Images, 2)
	assert.Equal(t, "https://cdn.example.com/1.png", out.Items[0].Images[0].URL)
}

// ---------------------------------------------------------------------------
// Imágenes
// ---------------------------------------------------------------------------

func TestImageAdd_SortOrderSiguiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	c := f.store.addCategory(menuID, "A", 10000)
	it := f.store.addItem(c, "Muzza", 10000)

	first, err := f.images.Add(ctx, owner, it, dto.CreateImageRequest{URL: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	second, err := f.images.Add(ctx, owner, it, dto.CreateImageRequest{URL: "https://cdn.example.com/b.png"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), first.SortOrder)
	assert.Equal(t, int64(1), second.SortOrder)

	_, err = f.images.Add(ctx, owner, it, dto.CreateImageRequest{URL: "no-es-url"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.images.Add(ctx, stranger, it, dto.CreateImageRequest{URL: "https://cdn.example.com/c.png"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Menús
// ---------------------------------------------------------------------------

func TestMenuCreate_LogoPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.menus.Create(context.Background(), owner, dto.CreateMenuRequest{
		Title: " La Esquina ",
		Color: &dto.MenuColorDTO{Primary: "#112233", Secondary: "#FFFFFF"},
	})
	require.NoError(t, err)
	assert.Equal(t, "La Esquina", out.Title)
	assert.True(t, out.Active)
	require.NotNil(t, out.Logo)
	assert.Equal(t, "https://cdn.example.com/logo.png", *out.Logo)

	_, err = f.menus.Create(context.Background(), owner, dto.CreateMenuRequest{
		Title: "X",
		Color: &dto.MenuColorDTO{Primary: "rojo", Secondary: "#FFFFFF"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMenuUpdate_PatchParcial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.menus.Create(ctx, owner, dto.CreateMenuRequest{Title: "A", Pos: ptr("Caja 1")})
	require.NoError(t, err)

	out, err := f.menus.Update(ctx, owner, created.ID, dto.MenuPatch{Title: ptr("B"), Pos: dto.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, "B", out.Title)
	assert.Nil(t, out.Pos)
	assert.NotNil(t, out.Logo, "el logo no se toca")

	_, err = f.menus.Update(ctx, stranger, created.ID, dto.MenuPatch{Title: ptr("C")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenuDelete_BajaLogica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)

	require.NoError(t, f.menus.Delete(ctx, owner, menuID))

	list, err := f.menus.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.False(t, f.store.menus[menuID].Active)
}

func TestMenuPublicTree_SoloActivosYOrdenados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	second := f.store.addCategory(menuID, "Bebidas", 20000)
	first := f.store.addCategory(menuID, "Entradas", 10000)
	hidden := f.store.addCategory(menuID, "Oculta", 30000)
	f.store.addItem(first, "Empanada", 20000)
	f.store.addItem(first, "Provoleta", 10000)
	f.store.addItem(second, "Agua", 10000)
	_, err := f.categories.Update(ctx, owner, hidden, dto.CategoryPatch{Active: ptr(false)})
	require.NoError(t, err)

	tree, err := f.menus.PublicTree(ctx, owner, menuID)
	require.NoError(t, err)
	require.Len(t, tree.Categories, 2)
	assert.Equal(t, "Entradas", tree.Categories[0].Title)
	assert.Equal(t, "Provoleta", tree.Categories[0].Items[0].Title)
	assert.Equal(t, "Bebidas", tree.Categories[1].Title)

	full, err := f.menus.Tree(ctx, owner, menuID)
	require.NoError(t, err)
	assert.Len(t, full.Categories, 3)

	_, err = f.menus.PublicTree(ctx, stranger, menuID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenuQR_ValidaParametrosYArmaURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)

	_, _, err := f.menus.QR(ctx, owner, menuID, dto.QRRequest{Format: "gif"}, "https://x.example.com/public/menu")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = f.menus.QR(ctx, owner, menuID, dto.QRRequest{Size: ptr(64)}, "https://x.example.com/public/menu")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	img, target, err := f.menus.QR(ctx, owner, menuID, dto.QRRequest{Format: "SVG", Size: ptr(256)}, "https://x.example.com/public/menu")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, fmt.Sprintf("https://x.example.com/public/menu?id=%d", menuID), target)
	assert.Equal(t, target, f.qr.data)
	assert.Equal(t, "svg", f.qr.format)
	assert.Equal(t, 256, f.qr.size)

	_, _, _ = f.menus.QR(ctx, owner, menuID, dto.QRRequest{}, "https://x.example.com/public/menu")
	assert.Equal(t, catalog.DefaultQRFormat, f.qr.format)
	assert.Equal(t, catalog.DefaultQRSize, f.qr.size)
}

func TestBuildPublicMenuURL(t *testing.T) {
	got, err := catalog.BuildPublicMenuURL("https://menus.example.com/public/menu?lang=es", 42)
	require.NoError(t, err)
	assert.Equal(t, "https://menus.example.com/public/menu?id=42&lang=es", got)

	_, err = catalog.BuildPublicMenuURL("/public/menu", 1)
	assert.Error(t, err)
	_, err = catalog.BuildPublicMenuURL("", 1)
	assert.Error(t, err)
}

func TestMenuPDF_SoloActivosConURLPublica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menuID := f.store.addMenu(owner, true)
	c := f.store.addCategory(menuID, "Pizzas", 10000)
	f.store.addItem(c, "Muzza", 10000)

	out, err := f.menus.PDF(ctx, owner, menuID, "https://x.example.com/public/menu")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "Carta", f.pdf.menu.Title)
	require.Len(t, f.pdf.menu.Categories, 1)
	assert.Equal(t, "Muzza", f.pdf.menu.Categories[0].Items[0].Title)
	assert.Contains(t, f.pdf.menu.PublicURL, "id=")
}

// ---------------------------------------------------------------------------
// Mantenimiento
// ---------------------------------------------------------------------------

func TestRebalanceMenu_CategoriasEItems(t *testing.T) {
	f := newFixture(t)
	menuID := f.store.addMenu(owner, true)
	a := f.store.addCategory(menuID, "A", 7)
	f.store.addCategory(menuID, "B", 9)
	f.store.addItem(a, "x", 1)
	f.store.addItem(a, "y", 2)

	sum, err := f.maintenance.RebalanceMenu(context.Background(), menuID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Categories)
	assert.Equal(t, 2, sum.ItemGroups)
	assert.Equal(t, []titled{{"A", 10000}, {"B", 20000}}, f.store.categoriesOf(menuID))
	assert.Equal(t, []titled{{"x", 10000}, {"y", 20000}}, f.store.itemsOf(a))

	_, err = f.maintenance.RebalanceMenu(context.Background(), 999, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
