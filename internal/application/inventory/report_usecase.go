package inventory

import (
	"context"
	"fmt"
)

// RiskReportUseCase arma el reporte imprimible del feed de alertas.
type RiskReportUseCase struct {
	risk      *RiskUseCase
	generator RiskReportGenerator
}

// NewRiskReportUseCase construye el caso de uso.
func NewRiskReportUseCase(riskUC *RiskUseCase, generator RiskReportGenerator) *RiskReportUseCase {
	return &RiskReportUseCase{risk: riskUC, generator: generator}
}

// Render evalúa la red y devuelve el documento generado.
func (uc *RiskReportUseCase) Render(ctx context.Context, filter NetworkFilter) ([]byte, error) {
	ev, err := uc.risk.EvaluateNetwork(ctx, filter)
	if err != nil {
		return nil, err
	}
	doc, err := uc.generator.Generate(ctx, RiskReport{
		Title:        "Reporte de riesgo de inventario",
		GeneratedAt:  ev.EvaluatedAt,
		Alerts:       ev.Alerts,
		Distribution: ev.Distribution,
		Savings:      ev.Savings,
	})
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	return doc, nil
}
