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

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	infrapdf "github.com/jhoicas/nexus-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/nexus-inventory/internal/interfaces/http"
	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

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

	stockRepo := postgres.NewStockRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	substationRepo := postgres.NewSubstationRepository(pool)
	forecastRepo := postgres.NewDemandForecastRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	riskCfg, transferCfg := inventory.EngineConfigs(cfg.Engine)
	classifier := risk.NewClassifier(riskCfg, nil)

	riskUC := inventory.NewRiskUseCase(stockRepo, materialRepo, warehouseRepo, substationRepo, forecastRepo, classifier, log)
	planningUC := inventory.NewTransferPlanningUseCase(riskUC, stockRepo, transferCfg, log)
	lifecycleUC := inventory.NewTransferLifecycleUseCase(txRunner, warehouseRepo, materialRepo, transferRepo, transferCfg, riskCfg.DefaultUnitPrice, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(planningUC)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, substationRepo, stockRepo, riskCfg.NearbyRadiusKm, transferCfg)

	// PDF: reporte imprimible del feed de alertas
	reportUC := inventory.NewRiskReportUseCase(riskUC, infrapdf.NewMarotoRiskReport())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nexus Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Risk:          riskUC,
		Report:        reportUC,
		Planning:      planningUC,
		Lifecycle:     lifecycleUC,
		Replenishment: replenishmentUC,
		Warehouses:    warehouseUC,
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
