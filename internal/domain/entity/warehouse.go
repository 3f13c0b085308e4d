package entity

import (
	"time"

	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Warehouse representa una bodega de la red (multi-bodega) con su ubicación.
// Location nil significa coordenadas no registradas: la bodega queda fuera de los rankings por distancia.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	State     string // estado/provincia; define restricciones de despacho por región
	Region    string
	Location  *geo.Location
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
