package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIssue       = "ISSUE"        // salida a obra
	MovementTypeReceipt     = "RECEIPT"      // entrada de proveedor
	MovementTypeTransferOut = "TRANSFER_OUT" // despacho desde bodega origen
	MovementTypeTransferIn  = "TRANSFER_IN"  // recepción en bodega destino
)

// InventoryMovement registro del kardex. TransactionID agrupa los movimientos de un mismo traslado.
type InventoryMovement struct {
	ID            string
	TransactionID string
	MaterialID    string
	WarehouseID   string
	Type          string
	Quantity      float64 // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
}
