package entity

import (
	"time"

	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Substation subestación u obra que consume materiales. Capacity es la etiqueta
// de tensión ("400kV", "132 kV", ...) que pondera la demanda de las bodegas cercanas.
type Substation struct {
	ID                 string
	Code               string
	Name               string
	Capacity           string
	Location           *geo.Location
	PrimaryWarehouseID string
	CreatedAt          time.Time
}
