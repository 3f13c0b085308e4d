package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados entre bodegas sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `
	id, code, material_id, source_warehouse_id, destination_warehouse_id, quantity,
	unit_cost, material_cost, transport_cost, total_cost, distance_km, eta_hours, delivery_days,
	severity, is_partial, status, COALESCE(reason, ''), expected_delivery, dispatched_at, delivered_at,
	created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.MaterialTransfer, error) {
	var t entity.MaterialTransfer
	err := row.Scan(&t.ID, &t.Code, &t.MaterialID, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.Quantity,
		&t.UnitCost, &t.MaterialCost, &t.TransportCost, &t.TotalCost, &t.DistanceKm, &t.ETAHours, &t.DeliveryDays,
		&t.Severity, &t.Partial, &t.Status, &t.Reason, &t.ExpectedDelivery, &t.DispatchedAt, &t.DeliveredAt,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un traslado. Un código repetido devuelve ErrConflict.
func (r *TransferRepo) Create(ctx context.Context, t *entity.MaterialTransfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_transfers (
			id, code, material_id, source_warehouse_id, destination_warehouse_id, quantity,
			unit_cost, material_cost, transport_cost, total_cost, distance_km, eta_hours, delivery_days,
			severity, is_partial, status, reason, expected_delivery, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NULLIF($17, ''), $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.MaterialID, t.SourceWarehouseID, t.DestinationWarehouseID, t.Quantity,
		t.UnitCost, t.MaterialCost, t.TransportCost, t.TotalCost, t.DistanceKm, t.ETAHours, t.DeliveryDays,
		t.Severity, t.Partial, t.Status, t.Reason, t.ExpectedDelivery, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: traslado %s ya existe", domain.ErrConflict, t.Code)
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado; nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.MaterialTransfer, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el traslado bloqueando la fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.MaterialTransfer, error) {
	return r.get(ctx, id, true)
}

func (r *TransferRepo) get(ctx context.Context, id string, lock bool) (*entity.MaterialTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM material_transfers WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update persiste estado, fechas y motivo del traslado.
func (r *TransferRepo) Update(ctx context.Context, t *entity.MaterialTransfer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE material_transfers
		SET status = $2, reason = NULLIF($3, ''), expected_delivery = $4,
		    dispatched_at = $5, delivered_at = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Status, t.Reason, t.ExpectedDelivery, t.DispatchedAt, t.DeliveredAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, t.ID)
	}
	return nil
}

// List traslados filtrados por estado (vacío = todos), más recientes primero.
func (r *TransferRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.MaterialTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM material_transfers`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += ` WHERE status = $1`
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
