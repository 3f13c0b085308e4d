// Package pdf genera el reporte imprimible de riesgo de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de corte                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DISTRIBUCIÓN: RED / AMBER / GREEN / sin demanda            │
//	│  AHORRO: compras urgentes evitadas / sobrestock / total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Material | Bodega | Sev. | UTR | PAR | Acción  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appinventory "github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 192, Green: 32, Blue: 32}
	colorAmber   = &props.Color{Red: 214, Green: 140, Blue: 0}
	colorGreen   = &props.Color{Red: 30, Green: 130, Blue: 60}
)

// MarotoRiskReport implementa inventory.RiskReportGenerator usando Maroto v2.
type MarotoRiskReport struct {
	printer *message.Printer
}

// NewMarotoRiskReport construye el generador. Los montos se formatean con separadores en español.
func NewMarotoRiskReport() *MarotoRiskReport {
	return &MarotoRiskReport{printer: message.NewPrinter(language.Spanish)}
}

// Generate arma el PDF y devuelve sus bytes.
func (g *MarotoRiskReport) Generate(ctx context.Context, report appinventory.RiskReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	title := report.Title
	if title == "" {
		title = "Reporte de riesgo de inventario"
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(title, report.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(distributionRow(report.Distribution))
	m.AddRows(g.savingsRow(report.Savings))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Alerts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas RED/AMBER a la fecha de corte.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	for _, a := range report.Alerts {
		m.AddRows(g.alertRow(a))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Corte: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func distributionRow(d risk.Distribution) core.Row {
	cell := func(label string, n int, share float64, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: c, Top: 1, Align: align.Center}),
			text.New(fmt.Sprintf("%d (%.0f%%)", n, share*100), props.Text{Size: 10, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("CRÍTICO", d.Red, d.Share(risk.SeverityRed), colorRed),
		cell("ATENCIÓN", d.Amber, d.Share(risk.SeverityAmber), colorAmber),
		cell("SANO", d.Green, d.Share(risk.SeverityGreen), colorGreen),
		cell("SIN DEMANDA", d.Indeterminate, d.Share(risk.SeverityIndeterminate), colorGray),
	)
}

func (g *MarotoRiskReport) savingsRow(s risk.SavingsSummary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell(fmt.Sprintf("Urgencias evitadas (%d)", s.RushOrdersAvoided), g.money(s.ExpediteSavings)),
		cell("Sobrestock (mensual)", g.money(s.HoldingSavings)),
		cell("Ahorro total", g.money(s.TotalSavings)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Alerta", 2, align.Left),
		h("Material", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Sev.", 1, align.Center),
		h("UTR", 1, align.Right),
		h("PAR", 1, align.Right),
		h("Acción", 2, align.Left),
	)
}

func (g *MarotoRiskReport) alertRow(a risk.Alert) core.Row {
	c := colorAmber
	if a.Severity == risk.SeverityRed {
		c = colorRed
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(a.ID, 2, align.Left),
		cell(nonEmpty(a.MaterialName, a.MaterialID), 3, align.Left),
		cell(nonEmpty(a.WarehouseName, a.WarehouseID), 2, align.Left),
		col.New(1).Add(text.New(string(a.Severity), props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: align.Center, Top: 1, Color: c,
		})),
		cell(g.printer.Sprintf("%.2f", a.UTR), 1, align.Right),
		cell(g.printer.Sprintf("%.2f", a.PAR), 1, align.Right),
		cell(a.Action, 2, align.Left),
	)
}

// money formatea con separador de miles según el idioma del printer. Ej: 52500 → "$52.500,00".
func (g *MarotoRiskReport) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + g.printer.Sprintf("%.2f", f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
