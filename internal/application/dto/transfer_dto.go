package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanTransfersRequest body de POST /api/transfers/plan. Listas vacías = toda la red.
type PlanTransfersRequest struct {
	MaterialIDs  []string `json:"material_ids,omitempty"`
	WarehouseIDs []string `json:"warehouse_ids,omitempty"`
}

// TransferPlanDTO traslado propuesto.
type TransferPlanDTO struct {
	MaterialID             string          `json:"material_id"`
	SourceWarehouseID      string          `json:"source_warehouse_id"`
	SourceWarehouseName    string          `json:"source_warehouse_name"`
	DestinationWarehouseID string          `json:"destination_warehouse_id"`
	Quantity               float64         `json:"quantity"`
	DistanceKm             float64         `json:"distance_km"`
	DeliveryDays           float64         `json:"delivery_days"`
	ETAHours               float64         `json:"eta_hours"`
	DeliveryDate           time.Time       `json:"delivery_date"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	MaterialCost           decimal.Decimal `json:"material_cost"`
	TransportCost          decimal.Decimal `json:"transport_cost"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	Severity               string          `json:"severity"`
	Partial                bool            `json:"partial"`
}

// AllocationDTO asignación de un faltante.
type AllocationDTO struct {
	MaterialID    string            `json:"material_id"`
	WarehouseID   string            `json:"warehouse_id"`
	WarehouseName string            `json:"warehouse_name"`
	Severity      string            `json:"severity"`
	Requested     float64           `json:"requested"`
	Allocated     float64           `json:"allocated"`
	Remaining     float64           `json:"remaining"`
	Status        string            `json:"status"`
	Error         string            `json:"error,omitempty"`
	Plans         []TransferPlanDTO `json:"plans"`
}

// PlanTransfersResponse resultado de la optimización.
type PlanTransfersResponse struct {
	GeneratedAt        time.Time       `json:"generated_at"`
	Allocations        []AllocationDTO `json:"allocations"`
	Fulfilled          int             `json:"fulfilled"`
	Partial            int             `json:"partial"`
	Unfulfillable      int             `json:"unfulfillable"`
	TotalTransportCost decimal.Decimal `json:"total_transport_cost"`
	TotalMaterialCost  decimal.Decimal `json:"total_material_cost"`
}

// ApplyTransferRequest body de POST /api/transfers: materializa un plan aceptado.
type ApplyTransferRequest struct {
	MaterialID             string  `json:"material_id"`
	SourceWarehouseID      string  `json:"source_warehouse_id"`
	DestinationWarehouseID string  `json:"destination_warehouse_id"`
	Quantity               float64 `json:"quantity"`
	Severity               string  `json:"severity,omitempty"`
}

// CancelTransferRequest body de POST /api/transfers/:id/cancel.
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferResponse traslado persistido.
type TransferResponse struct {
	ID                     string          `json:"id"`
	Code                   string          `json:"code"`
	MaterialID             string          `json:"material_id"`
	SourceWarehouseID      string          `json:"source_warehouse_id"`
	DestinationWarehouseID string          `json:"destination_warehouse_id"`
	Quantity               float64         `json:"quantity"`
	UnitCost               decimal.Decimal `json:"unit_cost"`
	MaterialCost           decimal.Decimal `json:"material_cost"`
	TransportCost          decimal.Decimal `json:"transport_cost"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	DistanceKm             float64         `json:"distance_km"`
	ETAHours               float64         `json:"eta_hours"`
	Severity               string          `json:"severity,omitempty"`
	Partial                bool            `json:"partial"`
	Status                 string          `json:"status"`
	Reason                 string          `json:"reason,omitempty"`
	ExpectedDelivery       time.Time       `json:"expected_delivery"`
	DispatchedAt           *time.Time      `json:"dispatched_at,omitempty"`
	DeliveredAt            *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PurchaseSuggestionDTO sugerencia de compra para el faltante que la red no cubre.
type PurchaseSuggestionDTO struct {
	MaterialID      string          `json:"material_id"`
	MaterialName    string          `json:"material_name"`
	WarehouseID     string          `json:"warehouse_id"`
	WarehouseName   string          `json:"warehouse_name"`
	Severity        string          `json:"severity"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	LeadTimeDays    int             `json:"lead_time_days"`
	ExpectedArrival time.Time       `json:"expected_arrival"`
	Expedite        bool            `json:"expedite"` // la cobertura no alcanza el lead time
	Priority        int             `json:"priority"` // 1 = más urgente
}

// PurchaseListResponse respuesta de GET /api/replenishment/purchase-list.
type PurchaseListResponse struct {
	Items     []PurchaseSuggestionDTO `json:"items"`
	TotalCost decimal.Decimal         `json:"total_cost"`
}
