package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un ítem del catálogo (transformadores, conductores, herrajes...).
// LeadTimeDays y UnitPrice pueden venir en cero: el motor aplica los valores por defecto configurados.
type Material struct {
	ID           string
	Code         string
	Name         string
	Category     string
	Unit         string
	LeadTimeDays int
	UnitPrice    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
