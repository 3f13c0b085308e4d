package risk

import "github.com/shopspring/decimal"

// SavingsSummary ahorro estimado al atender las alertas a tiempo.
type SavingsSummary struct {
	ExpediteSavings       decimal.Decimal // compras urgentes evitadas en pares RED
	HoldingSavings        decimal.Decimal // costo mensual de mantener el sobrestock
	TotalSavings          decimal.Decimal
	RushOrdersAvoided     int
	OverstockUnitsReduced float64
	OptimalOrders         int
}

// SummarizeSavings estima el ahorro sobre un conjunto de triggers.
// RED: faltante hasta el ROP * precio * sobrecosto urgente.
// Sobrestock: exceso sobre el máximo * precio * tasa anual / 12.
func SummarizeSavings(cfg Config, triggers []MaterialTrigger) SavingsSummary {
	premium := decimal.NewFromFloat(cfg.ExpeditePremium)
	monthlyHolding := decimal.NewFromFloat(cfg.HoldingCostRate).Div(decimal.NewFromInt(12))

	s := SavingsSummary{ExpediteSavings: decimal.Zero, HoldingSavings: decimal.Zero}
	for _, t := range triggers {
		price := decimal.NewFromFloat(t.UnitPrice)
		switch t.Severity {
		case SeverityRed:
			if short := t.Shortfall(1); short > 0 {
				s.RushOrdersAvoided++
				s.ExpediteSavings = s.ExpediteSavings.Add(decimal.NewFromFloat(short).Mul(price).Mul(premium))
			}
		case SeverityGreen:
			s.OptimalOrders++
		}
		if t.MaxStock > 0 && t.CurrentStock > t.MaxStock {
			excess := t.CurrentStock - t.MaxStock
			s.OverstockUnitsReduced += excess
			s.HoldingSavings = s.HoldingSavings.Add(decimal.NewFromFloat(excess).Mul(price).Mul(monthlyHolding))
		}
	}
	s.ExpediteSavings = s.ExpediteSavings.Round(2)
	s.HoldingSavings = s.HoldingSavings.Round(2)
	s.TotalSavings = s.ExpediteSavings.Add(s.HoldingSavings)
	return s
}
