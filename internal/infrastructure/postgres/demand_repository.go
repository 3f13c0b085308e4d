package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.DemandForecastRepository = (*DemandForecastRepo)(nil)

// DemandForecastRepo lee el último pronóstico vigente de demand_forecasts.
type DemandForecastRepo struct {
	q Querier
}

func NewDemandForecastRepository(q Querier) *DemandForecastRepo {
	return &DemandForecastRepo{q: q}
}

// DailyDemand demanda diaria del pronóstico más reciente por par material/bodega.
func (r *DemandForecastRepo) DailyDemand(ctx context.Context) (map[repository.DemandKey]float64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT ON (material_id, warehouse_id) material_id, warehouse_id, daily_demand
		FROM demand_forecasts
		WHERE valid_from <= now()
		ORDER BY material_id, warehouse_id, valid_from DESC`)
	if err != nil {
		return nil, fmt.Errorf("list demand forecasts: %w", err)
	}
	defer rows.Close()
	out := make(map[repository.DemandKey]float64)
	for rows.Next() {
		var k repository.DemandKey
		var d float64
		if err := rows.Scan(&k.MaterialID, &k.WarehouseID, &d); err != nil {
			return nil, fmt.Errorf("scan demand forecast: %w", err)
		}
		out[k] = d
	}
	return out, rows.Err()
}
