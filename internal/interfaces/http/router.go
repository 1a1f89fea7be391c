package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Menu-api/internal/application/auth"
	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MenuUC        *catalog.MenuUseCase
	CategoryUC    *catalog.CategoryUseCase
	ItemUC        *catalog.ItemUseCase
	ImageUC       *catalog.ImageUseCase
	ImportUC      *catalog.ImportUseCase
	MaintenanceUC *catalog.MaintenanceUseCase
	Tenants       tenantFinder
	JWTSecret     string
	Metrics       prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// Menú público por subdominio
	publicHandler := NewPublicMenuHandler(deps.MenuUC)
	app.Get("/public/menus/:id", TenantMiddleware(deps.Tenants), publicHandler.Get)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); el usuario del token es el tenant.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	menus := protected.Group("/menus")
	menuHandler := NewMenuHandler(deps.MenuUC, deps.ImportUC)
	menus.Get("/", menuHandler.List)
	menus.Post("/", menuHandler.Create)
	menus.Get("/:id", menuHandler.Get)
	menus.Put("/:id", menuHandler.Update)
	menus.Delete("/:id", menuHandler.Delete)
	menus.Get("/:id/qr", menuHandler.QR)
	menus.Get("/:id/pdf", menuHandler.PDF)
	menus.Post("/:id/import-csv", menuHandler.ImportCSV)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	imageHandler := NewImageHandler(deps.ImageUC)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/images", imageHandler.List)
	items.Post("/:id/images", imageHandler.Add)

	images := protected.Group("/images")
	images.Put("/:id", imageHandler.Update)
	images.Delete("/:id", imageHandler.Delete)

	// Mantenimiento (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.MaintenanceUC)
	admin.Post("/menus/:id/rebalance", adminHandler.Rebalance)
}
