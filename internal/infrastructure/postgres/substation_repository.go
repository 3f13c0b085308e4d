package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.SubstationRepository = (*SubstationRepo)(nil)

// SubstationRepo lectura de subestaciones.
type SubstationRepo struct {
	q Querier
}

func NewSubstationRepository(q Querier) *SubstationRepo {
	return &SubstationRepo{q: q}
}

// List todas las subestaciones; las que no tienen coordenadas vuelven con Location nil.
func (r *SubstationRepo) List(ctx context.Context) ([]*entity.Substation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, COALESCE(capacity, ''), latitude, longitude,
		       COALESCE(primary_warehouse_id::text, ''), created_at
		FROM substations ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list substations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Substation
	for rows.Next() {
		var s entity.Substation
		var lat, lon *float64
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Capacity, &lat, &lon, &s.PrimaryWarehouseID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan substation: %w", err)
		}
		s.Location = location(lat, lon)
		list = append(list, &s)
	}
	return list, rows.Err()
}
