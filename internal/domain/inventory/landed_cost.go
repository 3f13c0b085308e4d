package inventory

import "github.com/shopspring/decimal"

// LandedUnitCost costo unitario puesto en destino de un traslado: precio del material
// más el flete prorrateado por unidad.
func LandedUnitCost(unitPrice, transportCost decimal.Decimal, quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return unitPrice
	}
	return unitPrice.Add(transportCost.Div(quantity))
}

// WeightedAverageCost costo promedio ponderado al recibir una entrada en bodega.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(stockQty, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := stockQty.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockQty.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}
