package repository

import "context"

// DemandKey par material/bodega de un pronóstico.
type DemandKey struct {
	MaterialID  string
	WarehouseID string
}

// DemandForecastRepository pronóstico de demanda diaria vigente por par.
// Los pares ausentes no tienen pronóstico y el motor usa su fallback.
type DemandForecastRepository interface {
	DailyDemand(ctx context.Context) (map[DemandKey]float64, error)
}
