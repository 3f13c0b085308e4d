package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para el catálogo de materiales (DIP).
type MaterialRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	// UpdateUnitPrice actualiza el costo promedio tras recibir un traslado.
	UpdateUnitPrice(ctx context.Context, materialID string, price decimal.Decimal) error
}
