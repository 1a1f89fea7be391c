package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Menu-api/internal/application/auth"
	"github.com/jhoicas/Menu-api/internal/application/catalog"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	infrapdf "github.com/jhoicas/Menu-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Menu-api/internal/infrastructure/postgres"
	infraqr "github.com/jhoicas/Menu-api/internal/infrastructure/qr"
	httpRouter "github.com/jhoicas/Menu-api/internal/interfaces/http"
	"github.com/jhoicas/Menu-api/pkg/config"
	"github.com/jhoicas/Menu-api/pkg/logger"
	"github.com/jhoicas/Menu-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reg := metrics.New()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)

	orderingLog := log.Component("ordering")
	categoryPositions := appordering.NewPositionService(appordering.GroupCategories, reg.Ordering, orderingLog)
	itemPositions := appordering.NewPositionService(appordering.GroupItems, reg.Ordering, orderingLog)

	// QR: proveedor externo; PDF: carta imprimible con Maroto
	qrClient := infraqr.NewHTTPClient(cfg.QR.Endpoint, time.Duration(cfg.QR.TimeoutMS)*time.Millisecond)
	pdfGenerator := infrapdf.NewMarotoMenuPDF()

	menuUC := catalog.NewMenuUseCase(repos, qrClient, pdfGenerator, catalog.MenuConfig{
		DefaultLogoURL: cfg.App.DefaultLogoURL,
		PublicBaseURL:  cfg.PublicMenu.BaseURL,
	}, log.Component("menus"))
	categoryUC := catalog.NewCategoryUseCase(repos, txRunner, categoryPositions)
	itemUC := catalog.NewItemUseCase(repos, txRunner, itemPositions)
	imageUC := catalog.NewImageUseCase(repos, txRunner)
	importUC := catalog.NewImportUseCase(repos, txRunner, categoryPositions, itemPositions, reg.Import, log.Component("import"))
	maintenanceUC := catalog.NewMaintenanceUseCase(repos, txRunner, categoryPositions, itemPositions)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Menu API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: falta docs/swagger.json")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = reg.Prometheus()
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MenuUC:        menuUC,
		CategoryUC:    categoryUC,
		ItemUC:        itemUC,
		ImageUC:       imageUC,
		ImportUC:      importUC,
		MaintenanceUC: maintenanceUC,
		Tenants:       userRepo,
		JWTSecret:     cfg.JWT.Secret,
		Metrics:       gatherer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
