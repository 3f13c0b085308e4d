package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// TransferRepository persistencia de traslados entre bodegas.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.MaterialTransfer) error
	GetByID(ctx context.Context, id string) (*entity.MaterialTransfer, error)
	// GetForUpdate bloquea el traslado mientras cambia de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.MaterialTransfer, error)
	Update(ctx context.Context, t *entity.MaterialTransfer) error
	// List filtra por estado (vacío = todos), más recientes primero.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.MaterialTransfer, error)
}
