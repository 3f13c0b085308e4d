package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Risk          *inventory.RiskUseCase
	Report        *inventory.RiskReportUseCase
	Planning      *inventory.TransferPlanningUseCase
	Lifecycle     *inventory.TransferLifecycleUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Warehouses    *usecase.WarehouseUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Riesgo
	riskGroup := api.Group("/risk")
	riskHandler := NewRiskHandler(deps.Risk, deps.Report)
	riskGroup.Get("/triggers", riskHandler.Triggers)
	riskGroup.Get("/alerts", riskHandler.Alerts)
	riskGroup.Get("/report.pdf", riskHandler.Report)

	// Traslados
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Planning, deps.Lifecycle)
	transfers.Post("/plan", transferHandler.Plan)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", transferHandler.Apply)
	transfers.Post("/:id/dispatch", transferHandler.Dispatch)
	transfers.Post("/:id/complete", transferHandler.Complete)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.Warehouses)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/sources", warehouseHandler.Sources)

	// Compras
	replenishment := api.Group("/replenishment")
	replenishmentHandler := NewReplenishmentHandler(deps.Replenishment)
	replenishment.Get("/purchase-list", replenishmentHandler.PurchaseList)
}
