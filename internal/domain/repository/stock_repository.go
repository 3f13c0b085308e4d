package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// StockFilter restringe la lectura de snapshots; listas vacías no filtran.
type StockFilter struct {
	MaterialIDs  []string
	WarehouseIDs []string
}

// StockRepository define el puerto para consultar/actualizar stock por material+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	List(ctx context.Context, filter StockFilter) ([]*entity.StockSnapshot, error)
	Get(ctx context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error)
	// UpdateQuantities persiste disponible, reservado y en tránsito.
	UpdateQuantities(ctx context.Context, stock *entity.StockSnapshot) error
}
