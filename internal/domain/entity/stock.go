package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain"
)

// StockSnapshot foto del stock de un material en una bodega (tabla inventory_stock).
// Se muta en cada transacción (salida, entrada, traslado) y cuando se recalculan umbrales;
// el motor solo la lee y nunca asume ser el único escritor.
type StockSnapshot struct {
	MaterialID        string
	WarehouseID       string
	QuantityAvailable float64
	QuantityReserved  float64
	QuantityInTransit float64
	ReorderPoint      float64
	MinStockLevel     float64 // stock de seguridad
	MaxStockLevel     float64
	LeadTimeDays      int
	UnitPrice         float64
	UpdatedAt         time.Time
}

// Transferable cantidad disponible para traslado: disponible menos reservado, nunca negativa.
func (s StockSnapshot) Transferable() float64 {
	if q := s.QuantityAvailable - s.QuantityReserved; q > 0 {
		return q
	}
	return 0
}

// Validate verifica cantidades no negativas y max >= reorden >= mínimo.
// Un umbral en cero se considera no configurado y no participa en el orden.
func (s StockSnapshot) Validate() error {
	if s.QuantityAvailable < 0 || s.QuantityReserved < 0 || s.QuantityInTransit < 0 {
		return fmt.Errorf("%w: cantidades negativas en %s/%s", domain.ErrInvalidInput, s.MaterialID, s.WarehouseID)
	}
	if s.ReorderPoint < 0 || s.MinStockLevel < 0 || s.MaxStockLevel < 0 {
		return fmt.Errorf("%w: umbrales negativos en %s/%s", domain.ErrInvalidInput, s.MaterialID, s.WarehouseID)
	}
	if s.ReorderPoint > 0 && s.MinStockLevel > s.ReorderPoint {
		return fmt.Errorf("%w: stock mínimo mayor al punto de reorden", domain.ErrInvalidInput)
	}
	if s.MaxStockLevel > 0 && s.ReorderPoint > s.MaxStockLevel {
		return fmt.Errorf("%w: punto de reorden mayor al stock máximo", domain.ErrInvalidInput)
	}
	return nil
}
