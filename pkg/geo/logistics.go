package geo

import "math"

// CostModel tarifas del costo de transporte por camión.
// TransportCost = distancia * PerKm + LoadingCost, escalado por volumen sobre BulkThreshold.
type CostModel struct {
	PerKm         float64 // INR por km (combustible / rendimiento del camión)
	LoadingCost   float64 // INR fijos de cargue y descargue por traslado
	BulkThreshold float64 // unidades a partir de las cuales se requieren más camiones
	BulkStep      float64 // unidades que añaden +100 % al costo sobre el umbral
}

// DefaultCostModel: 100 INR/l ÷ 4 km/l = 25 INR/km, 5000 INR de cargue.
var DefaultCostModel = CostModel{
	PerKm:         25,
	LoadingCost:   5000,
	BulkThreshold: 1000,
	BulkStep:      10000,
}

// TransportCost costo total de mover quantity unidades a distanceKm.
// Función pura, no decreciente en distancia y cantidad.
func (m CostModel) TransportCost(distanceKm, quantity float64) float64 {
	distanceKm = math.Max(0, distanceKm)
	quantity = math.Max(0, quantity)

	total := distanceKm*m.PerKm + m.LoadingCost
	if m.BulkStep > 0 && quantity > m.BulkThreshold {
		total *= 1 + (quantity-m.BulkThreshold)/m.BulkStep
	}
	return total
}

// TransportCost usa DefaultCostModel.
func TransportCost(distanceKm, quantity float64) float64 {
	return DefaultCostModel.TransportCost(distanceKm, quantity)
}

const (
	kmPerTransitDay = 50 * 8 // 50 km/h durante 8 h de manejo
	bufferDays      = 2

	truckSpeedKmh = 45.0
	delayFactor   = 1.15
	handlingHours = 4.0
)

// EstimateDeliveryDays suma al lead time base los días de tránsito por distancia
// más dos días de holgura. Nunca es menor que baseLeadTimeDays.
func EstimateDeliveryDays(distanceKm, baseLeadTimeDays float64) float64 {
	base := math.Max(0, baseLeadTimeDays)
	transit := math.Ceil(math.Max(0, distanceKm) / kmPerTransitDay)
	return base + transit + bufferDays
}

// EstimateETAHours horas estimadas de llegada: viaje a 45 km/h con 15 % de holgura
// por tráfico más cuatro horas de manipulación.
func EstimateETAHours(distanceKm float64) float64 {
	travel := math.Max(0, distanceKm) / truckSpeedKmh
	return travel*delayFactor + handlingHours
}
