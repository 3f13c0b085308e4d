package dto

import "github.com/jhoicas/nexus-inventory/pkg/geo"

// WarehouseRef identificación mínima de una bodega en respuestas.
type WarehouseRef struct {
	ID       string        `json:"id"`
	Code     string        `json:"code,omitempty"`
	Name     string        `json:"name"`
	State    string        `json:"state,omitempty"`
	Location *geo.Location `json:"location,omitempty"`
}

// NearbySubstationDTO subestación dentro del radio de influencia de la bodega.
type NearbySubstationDTO struct {
	ID         string  `json:"id"`
	Code       string  `json:"code,omitempty"`
	Name       string  `json:"name"`
	Capacity   string  `json:"capacity"`
	DistanceKm float64 `json:"distance_km"`
}

// WarehouseResponse bodega con las subestaciones que pondera su demanda.
type WarehouseResponse struct {
	WarehouseRef
	Region            string                `json:"region,omitempty"`
	IsActive          bool                  `json:"is_active"`
	NearbySubstations []NearbySubstationDTO `json:"nearby_substations"`
}

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// SourceCandidateDTO bodega que puede despachar al destino consultado.
type SourceCandidateDTO struct {
	WarehouseRef
	Transferable float64 `json:"transferable"`
	LeadTimeDays float64 `json:"lead_time_days"`
	DistanceKm   float64 `json:"distance_km"`
	DeliveryDays float64 `json:"delivery_days"`
	ETAHours     float64 `json:"eta_hours"`
}

// SkippedSourceDTO bodega descartada y motivo.
type SkippedSourceDTO struct {
	WarehouseID string `json:"warehouse_id"`
	Reason      string `json:"reason"`
}

// SourcesResponse respuesta de GET /api/warehouses/:id/sources.
type SourcesResponse struct {
	MaterialID  string               `json:"material_id"`
	Destination WarehouseRef         `json:"destination"`
	Quantity    float64              `json:"quantity"`
	Candidates  []SourceCandidateDTO `json:"candidates"`
	Skipped     []SkippedSourceDTO   `json:"skipped"`
}
