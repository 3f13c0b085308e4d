package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `
	material_id, warehouse_id, quantity_available, quantity_reserved, quantity_in_transit,
	COALESCE(reorder_point, 0), COALESCE(min_stock_level, 0), COALESCE(max_stock_level, 0),
	COALESCE(lead_time_days, 0), COALESCE(unit_price, 0), updated_at`

func scanStock(row pgx.Row) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	err := row.Scan(&s.MaterialID, &s.WarehouseID, &s.QuantityAvailable, &s.QuantityReserved, &s.QuantityInTransit,
		&s.ReorderPoint, &s.MinStockLevel, &s.MaxStockLevel, &s.LeadTimeDays, &s.UnitPrice, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List lee los snapshots de inventory_stock aplicando el filtro.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_stock WHERE true`
	var args []any
	if len(filter.MaterialIDs) > 0 {
		args = append(args, filter.MaterialIDs)
		query += fmt.Sprintf(" AND material_id = ANY($%d)", len(args))
	}
	if len(filter.WarehouseIDs) > 0 {
		args = append(args, filter.WarehouseIDs)
		query += fmt.Sprintf(" AND warehouse_id = ANY($%d)", len(args))
	}
	query += ` ORDER BY material_id, warehouse_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Get obtiene el stock actual de un material en una bodega.
// Sin fila devuelve un snapshot en cero.
func (r *StockRepo) Get(ctx context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error) {
	return r.get(ctx, materialID, warehouseID, false)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error) {
	return r.get(ctx, materialID, warehouseID, true)
}

func (r *StockRepo) get(ctx context.Context, materialID, warehouseID string, lock bool) (*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_stock WHERE material_id = $1 AND warehouse_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	s, err := scanStock(r.q.QueryRow(ctx, query, materialID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSnapshot{MaterialID: materialID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// UpdateQuantities inserta o actualiza las cantidades (por material y bodega).
// Los umbrales no se tocan: los mantiene el proceso de planeación.
func (r *StockRepo) UpdateQuantities(ctx context.Context, stock *entity.StockSnapshot) error {
	query := `
		INSERT INTO inventory_stock (material_id, warehouse_id, quantity_available, quantity_reserved, quantity_in_transit, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (material_id, warehouse_id)
		DO UPDATE SET quantity_available = EXCLUDED.quantity_available,
		              quantity_reserved = EXCLUDED.quantity_reserved,
		              quantity_in_transit = EXCLUDED.quantity_in_transit,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.MaterialID, stock.WarehouseID,
		stock.QuantityAvailable, stock.QuantityReserved, stock.QuantityInTransit)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
