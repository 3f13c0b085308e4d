package transfer

import (
	"fmt"
	"sort"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Source stock de un material en una bodega candidata a despachar.
type Source struct {
	Warehouse entity.Warehouse
	Stock     entity.StockSnapshot
}

// Candidate bodega que puede cubrir la cantidad pedida.
type Candidate struct {
	WarehouseID       string
	WarehouseCode     string
	WarehouseName     string
	State             string
	MaterialID        string
	QuantityAvailable float64
	QuantityReserved  float64
	Transferable      float64
	LeadTimeDays      float64 // días de alistamiento en la fuente
	DistanceKm        float64
	DeliveryDays      float64
	ETAHours          float64
}

// SkipReason motivo por el que una bodega no entra al ranking.
type SkipReason string

const (
	SkipDestination       SkipReason = "DESTINATION"
	SkipInactive          SkipReason = "INACTIVE"
	SkipInvalidLocation   SkipReason = "INVALID_LOCATION"
	SkipRestrictedRegion  SkipReason = "RESTRICTED_REGION"
	SkipInsufficientStock SkipReason = "INSUFFICIENT_STOCK"
)

// Skipped bodega descartada y su motivo.
type Skipped struct {
	WarehouseID string
	Reason      SkipReason
}

// Ranking candidatas ordenadas y bodegas descartadas. Sin candidatas es un resultado válido.
type Ranking struct {
	Candidates []Candidate
	Skipped    []Skipped
}

// Nearest primera candidata del ranking, si existe.
func (r Ranking) Nearest() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// FindCandidates ordena las bodegas que pueden despachar requested unidades del
// material a destination: distancia ↑, días de entrega ↑, disponible ↓, id ↑.
// Solo falla si la ubicación del destino es inválida.
func FindCandidates(cfg Config, material entity.Material, destination entity.Warehouse, requested float64, sources []Source) (Ranking, error) {
	if destination.Location == nil {
		return Ranking{}, fmt.Errorf("%w: bodega destino %s sin coordenadas", domain.ErrInvalidLocation, destination.ID)
	}
	if err := destination.Location.Validate(); err != nil {
		return Ranking{}, fmt.Errorf("bodega destino %s: %w", destination.ID, err)
	}

	var r Ranking
	for _, s := range sources {
		wh := s.Warehouse
		if s.Stock.MaterialID != material.ID {
			continue
		}
		switch {
		case wh.ID == destination.ID:
			r.Skipped = append(r.Skipped, Skipped{WarehouseID: wh.ID, Reason: SkipDestination})
			continue
		case !wh.IsActive:
			r.Skipped = append(r.Skipped, Skipped{WarehouseID: wh.ID, Reason: SkipInactive})
			continue
		}

		distance, err := geo.Between(wh.Location, destination.Location)
		if err != nil {
			r.Skipped = append(r.Skipped, Skipped{WarehouseID: wh.ID, Reason: SkipInvalidLocation})
			continue
		}
		if cfg.restricted(wh.State) && distance > cfg.RestrictedRegionMaxKm {
			r.Skipped = append(r.Skipped, Skipped{WarehouseID: wh.ID, Reason: SkipRestrictedRegion})
			continue
		}
		leadTime := cfg.SourceLeadTime(s.Stock)
		transferable := s.Stock.Transferable()
		if transferable <= 0 || transferable < requested {
			r.Skipped = append(r.Skipped, Skipped{WarehouseID: wh.ID, Reason: SkipInsufficientStock})
			continue
		}

		r.Candidates = append(r.Candidates, Candidate{
			WarehouseID:       wh.ID,
			WarehouseCode:     wh.Code,
			WarehouseName:     wh.Name,
			State:             wh.State,
			MaterialID:        material.ID,
			QuantityAvailable: s.Stock.QuantityAvailable,
			QuantityReserved:  s.Stock.QuantityReserved,
			Transferable:      transferable,
			LeadTimeDays:      leadTime,
			DistanceKm:        distance,
			DeliveryDays:      geo.EstimateDeliveryDays(distance, leadTime),
			ETAHours:          geo.EstimateETAHours(distance),
		})
	}

	sort.SliceStable(r.Candidates, func(i, j int) bool {
		a, b := r.Candidates[i], r.Candidates[j]
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		if a.DeliveryDays != b.DeliveryDays {
			return a.DeliveryDays < b.DeliveryDays
		}
		if a.QuantityAvailable != b.QuantityAvailable {
			return a.QuantityAvailable > b.QuantityAvailable
		}
		return a.WarehouseID < b.WarehouseID
	})
	return r, nil
}
