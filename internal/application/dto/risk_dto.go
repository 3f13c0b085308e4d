package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TriggerDTO severidad e indicadores de un par material/bodega.
type TriggerDTO struct {
	MaterialID        string                `json:"material_id"`
	MaterialName      string                `json:"material_name"`
	WarehouseID       string                `json:"warehouse_id"`
	WarehouseName     string                `json:"warehouse_name"`
	Severity          string                `json:"severity"`
	Reason            string                `json:"reason"`
	Label             string                `json:"label"`
	Action            string                `json:"action"`
	CurrentStock      float64               `json:"current_stock"`
	SafetyStock       float64               `json:"safety_stock"`
	ReorderPoint      float64               `json:"reorder_point"`
	MaxStock          float64               `json:"max_stock"`
	UTR               float64               `json:"utr"`
	OTR               float64               `json:"otr"`
	PAR               float64               `json:"par"`
	DaysOfStock       *float64              `json:"days_of_stock"` // null = demanda cero
	DailyDemand       float64               `json:"daily_demand"`
	DemandMultiplier  float64               `json:"demand_multiplier"`
	DemandSource      string                `json:"demand_source,omitempty"`
	LeadTimeDays      int                   `json:"lead_time_days"`
	UnitPrice         float64               `json:"unit_price"`
	NearbySubstations []NearbySubstationDTO `json:"nearby_substations"`
	Issue             string                `json:"issue,omitempty"`
}

// AlertDTO entrada del feed de alertas.
type AlertDTO struct {
	ID            string    `json:"id"`
	MaterialID    string    `json:"material_id"`
	MaterialName  string    `json:"material_name"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Severity      string    `json:"severity"`
	UTR           float64   `json:"utr"`
	PAR           float64   `json:"par"`
	Message       string    `json:"message"`
	Action        string    `json:"action"`
	CreatedAt     time.Time `json:"created_at"`
}

// DistributionDTO conteo por severidad.
type DistributionDTO struct {
	Red           int `json:"red"`
	Amber         int `json:"amber"`
	Green         int `json:"green"`
	Indeterminate int `json:"indeterminate"`
	Total         int `json:"total"`
}

// SavingsDTO ahorro estimado por atender alertas a tiempo.
type SavingsDTO struct {
	ExpediteSavings       decimal.Decimal `json:"expedite_savings"`
	HoldingSavings        decimal.Decimal `json:"holding_savings"`
	TotalSavings          decimal.Decimal `json:"total_savings"`
	RushOrdersAvoided     int             `json:"rush_orders_avoided"`
	OverstockUnitsReduced float64         `json:"overstock_units_reduced"`
	OptimalOrders         int             `json:"optimal_orders"`
}

// RiskTriggersResponse respuesta de GET /api/risk/triggers.
type RiskTriggersResponse struct {
	EvaluatedAt  time.Time       `json:"evaluated_at"`
	Distribution DistributionDTO `json:"distribution"`
	Savings      SavingsDTO      `json:"savings"`
	Triggers     []TriggerDTO    `json:"triggers"`
}

// AlertFeedResponse respuesta de GET /api/risk/alerts.
type AlertFeedResponse struct {
	Items []AlertDTO `json:"items"`
	Total int        `json:"total"`
}
