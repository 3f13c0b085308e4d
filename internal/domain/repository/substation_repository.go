package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// SubstationRepository lectura de subestaciones con sus coordenadas.
type SubstationRepository interface {
	List(ctx context.Context) ([]*entity.Substation, error)
}
