package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado de material.
const (
	TransferStatusPlanned   = "PLANNED"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusDelivered = "DELIVERED"
	TransferStatusCancelled = "CANCELLED"
)

// MaterialTransfer materialización persistida de un plan de traslado aceptado.
// PLANNED reserva stock en origen; IN_TRANSIT lo descuenta; DELIVERED lo acredita en destino.
type MaterialTransfer struct {
	ID                     string
	Code                   string
	MaterialID             string
	SourceWarehouseID      string
	DestinationWarehouseID string
	Quantity               float64
	UnitCost               decimal.Decimal
	MaterialCost           decimal.Decimal
	TransportCost          decimal.Decimal
	TotalCost              decimal.Decimal
	DistanceKm             float64
	ETAHours               float64
	DeliveryDays           float64
	Severity               string
	Partial                bool
	Status                 string
	Reason                 string
	ExpectedDelivery       time.Time
	DispatchedAt           *time.Time
	DeliveredAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
