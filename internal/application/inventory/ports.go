package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Reservar, despachar o recibir un traslado es atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		transferRepo repository.TransferRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}

// RiskReportGenerator genera el reporte imprimible del feed de alertas.
type RiskReportGenerator interface {
	Generate(ctx context.Context, report RiskReport) ([]byte, error)
}

// RiskReport datos del reporte de riesgo.
type RiskReport struct {
	Title        string
	GeneratedAt  time.Time
	Alerts       []risk.Alert
	Distribution risk.Distribution
	Savings      risk.SavingsSummary
}
