package transfer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

// Key identifica un par material/bodega.
type Key struct {
	MaterialID  string
	WarehouseID string
}

// KeyOf par destino de un trigger.
func KeyOf(t risk.MaterialTrigger) Key {
	return Key{MaterialID: t.MaterialID, WarehouseID: t.WarehouseID}
}

// Plan traslado propuesto desde una bodega fuente hacia el destino.
type Plan struct {
	MaterialID             string
	SourceWarehouseID      string
	SourceWarehouseName    string
	DestinationWarehouseID string
	Quantity               float64
	DistanceKm             float64
	DeliveryDays           float64
	ETAHours               float64
	UnitPrice              decimal.Decimal
	MaterialCost           decimal.Decimal
	TransportCost          decimal.Decimal
	TotalCost              decimal.Decimal
	Severity               risk.Severity
	Partial                bool
}

// DeliveryDate fecha estimada de entrega si el traslado sale en from.
func (p Plan) DeliveryDate(from time.Time) time.Time {
	return from.Add(time.Duration(p.DeliveryDays * float64(24*time.Hour)))
}

// AllocationStatus resultado de cubrir el faltante de un destino.
type AllocationStatus string

const (
	StatusFulfilled     AllocationStatus = "FULFILLED"
	StatusPartial       AllocationStatus = "PARTIAL"
	StatusUnfulfillable AllocationStatus = "UNFULFILLABLE"
)

// Allocation asignación para un trigger RED/AMBER.
type Allocation struct {
	Trigger   risk.MaterialTrigger
	Requested float64
	Allocated float64
	Remaining float64
	Status    AllocationStatus
	Plans     []Plan
}

// Err ErrUnfulfillable envuelto cuando ninguna fuente pudo aportar.
func (a Allocation) Err() error {
	if a.Status != StatusUnfulfillable {
		return nil
	}
	return fmt.Errorf("%w: material %s en bodega %s (%.2f u)", domain.ErrUnfulfillable, a.Trigger.MaterialID, a.Trigger.WarehouseID, a.Requested)
}

// Result asignaciones en el orden en que se procesaron.
type Result struct {
	Allocations        []Allocation
	TotalTransportCost decimal.Decimal
	TotalMaterialCost  decimal.Decimal
}

// Plans todos los traslados propuestos.
func (r Result) Plans() []Plan {
	var out []Plan
	for _, a := range r.Allocations {
		out = append(out, a.Plans...)
	}
	return out
}

// Count asignaciones con el estado dado.
func (r Result) Count(status AllocationStatus) int {
	n := 0
	for _, a := range r.Allocations {
		if a.Status == status {
			n++
		}
	}
	return n
}

// OptimizeTransfers asigna fuentes a los faltantes de los triggers RED/AMBER.
// Los destinos se atienden por severidad, cercanía de su mejor candidata y UTR;
// cada uno toma en orden de ranking del inventario aún libre de cada fuente.
// Una fuente nunca entrega más que su cantidad transferable. Determinista.
func OptimizeTransfers(cfg Config, triggers []risk.MaterialTrigger, candidates map[Key][]Candidate) Result {
	type pending struct {
		trigger   risk.MaterialTrigger
		shortfall float64
		nearest   float64
	}

	// pares con faltante propio no despachan ese material
	needy := make(map[Key]bool)
	var queue []pending
	for _, t := range triggers {
		if !t.Severity.NeedsReplenishment() {
			continue
		}
		short := t.Shortfall(cfg.TargetFillFactor)
		if short <= 0 {
			continue
		}
		key := KeyOf(t)
		needy[key] = true
		nearest := math.Inf(1)
		if cs := candidates[key]; len(cs) > 0 {
			nearest = cs[0].DistanceKm
		}
		queue = append(queue, pending{trigger: t, shortfall: short, nearest: nearest})
	}

	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if pa, pb := a.trigger.Severity.Priority(), b.trigger.Severity.Priority(); pa != pb {
			return pa < pb
		}
		if a.nearest != b.nearest {
			return a.nearest < b.nearest
		}
		if a.trigger.UTR != b.trigger.UTR {
			return a.trigger.UTR > b.trigger.UTR
		}
		if a.trigger.MaterialID != b.trigger.MaterialID {
			return a.trigger.MaterialID < b.trigger.MaterialID
		}
		return a.trigger.WarehouseID < b.trigger.WarehouseID
	})

	pool := make(map[Key]float64)
	res := Result{TotalTransportCost: decimal.Zero, TotalMaterialCost: decimal.Zero}
	for _, p := range queue {
		alloc := Allocation{Trigger: p.trigger, Requested: p.shortfall, Remaining: p.shortfall}
		price := decimal.NewFromFloat(p.trigger.UnitPrice)

		for _, c := range candidates[KeyOf(p.trigger)] {
			if alloc.Remaining <= 0 {
				break
			}
			src := Key{MaterialID: p.trigger.MaterialID, WarehouseID: c.WarehouseID}
			if needy[src] || c.WarehouseID == p.trigger.WarehouseID {
				continue
			}
			free, seen := pool[src]
			if !seen {
				free = c.Transferable
			}
			take := math.Min(free, alloc.Remaining)
			if take <= 0 || (take < cfg.MinTransferQuantity && take < alloc.Remaining) {
				continue
			}
			pool[src] = free - take

			qty := decimal.NewFromFloat(take)
			materialCost := qty.Mul(price).Round(2)
			transportCost := decimal.NewFromFloat(cfg.CostModel.TransportCost(c.DistanceKm, take)).Round(2)
			alloc.Plans = append(alloc.Plans, Plan{
				MaterialID:             p.trigger.MaterialID,
				SourceWarehouseID:      c.WarehouseID,
				SourceWarehouseName:    c.WarehouseName,
				DestinationWarehouseID: p.trigger.WarehouseID,
				Quantity:               take,
				DistanceKm:             c.DistanceKm,
				DeliveryDays:           c.DeliveryDays,
				ETAHours:               c.ETAHours,
				UnitPrice:              price,
				MaterialCost:           materialCost,
				TransportCost:          transportCost,
				TotalCost:              materialCost.Add(transportCost),
				Severity:               p.trigger.Severity,
			})
			alloc.Allocated += take
			alloc.Remaining -= take
			res.TotalMaterialCost = res.TotalMaterialCost.Add(materialCost)
			res.TotalTransportCost = res.TotalTransportCost.Add(transportCost)
		}

		switch {
		case alloc.Allocated == 0:
			alloc.Status = StatusUnfulfillable
		case alloc.Remaining > 1e-9:
			alloc.Status = StatusPartial
			for i := range alloc.Plans {
				alloc.Plans[i].Partial = true
			}
		default:
			alloc.Status = StatusFulfilled
			alloc.Remaining = 0
		}
		res.Allocations = append(res.Allocations, alloc)
	}
	return res
}
