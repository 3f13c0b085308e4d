package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Input datos de un par material/bodega para evaluar.
// LeadTimeDays, UnitPrice y MaxStockLevel en cero toman los valores por defecto.
type Input struct {
	Snapshot            entity.StockSnapshot
	Material            entity.Material
	Warehouse           entity.Warehouse
	LeadTimeDays        int
	UnitPrice           float64
	MaxStockLevel       float64
	Substations         []entity.Substation
	SuppliedDailyDemand float64 // <= 0: sin pronóstico
}

// NewInput arma el Input tomando lead time y precio del material y, en su defecto, del stock.
func NewInput(snap entity.StockSnapshot, mat entity.Material, wh entity.Warehouse, subs []entity.Substation) Input {
	in := Input{
		Snapshot:      snap,
		Material:      mat,
		Warehouse:     wh,
		LeadTimeDays:  mat.LeadTimeDays,
		UnitPrice:     mat.UnitPrice.InexactFloat64(),
		MaxStockLevel: snap.MaxStockLevel,
		Substations:   subs,
	}
	if in.LeadTimeDays <= 0 {
		in.LeadTimeDays = snap.LeadTimeDays
	}
	if in.UnitPrice <= 0 {
		in.UnitPrice = snap.UnitPrice
	}
	return in
}

// Classifier evalúa pares material/bodega con una configuración fija.
type Classifier struct {
	cfg    Config
	demand DemandStrategy
}

// NewClassifier crea el clasificador. demand nil usa DefaultDemandStrategy.
func NewClassifier(cfg Config, demand DemandStrategy) *Classifier {
	if demand == nil {
		demand = DefaultDemandStrategy(cfg)
	}
	return &Classifier{cfg: cfg.clone(), demand: demand}
}

// Config copia de la configuración en uso.
func (c *Classifier) Config() Config { return c.cfg.clone() }

// metrics indicadores de stock de un par.
type metrics struct {
	safetyStock  float64
	reorderPoint float64
	maxStock     float64
	utr          float64
	otr          float64
	par          float64
	daysOfStock  float64
}

func (c *Classifier) computeMetrics(dailyDemand float64, leadTime int, stock, maxStock float64) metrics {
	lt := float64(leadTime)
	sigma := dailyDemand * c.cfg.DemandVariability
	safety := math.Max(c.cfg.ServiceLevelZ*sigma*math.Sqrt(lt), dailyDemand*c.cfg.MinBufferDays)
	rop := dailyDemand*lt + safety
	if maxStock <= 0 {
		maxStock = rop * c.cfg.MaxStockMultiplier
	}

	m := metrics{safetyStock: safety, reorderPoint: rop, maxStock: maxStock}
	if rop > 0 {
		m.utr = math.Max(0, (rop-stock)/rop)
	}
	if maxStock > 0 {
		m.otr = math.Max(0, (stock-maxStock)/maxStock)
		m.par = stock / maxStock
	}
	if dailyDemand > 0 {
		m.daysOfStock = stock / dailyDemand
	} else {
		m.daysOfStock = math.Inf(1)
	}
	return m
}

// classify cascada RED → AMBER → GREEN; la primera regla que dispara decide.
func (c *Classifier) classify(m metrics, leadTime int) (Severity, Reason) {
	th := c.cfg.Thresholds
	lt := float64(leadTime)
	switch {
	case m.utr > th.RedUTR:
		return SeverityRed, ReasonUnderstock
	case m.daysOfStock < lt*th.RedCoverFactor:
		return SeverityRed, ReasonCoverage
	case m.par < th.RedPAR:
		return SeverityRed, ReasonAdequacy
	case m.utr > th.AmberUTR:
		return SeverityAmber, ReasonUnderstock
	case m.daysOfStock < lt*th.AmberCoverFactor:
		return SeverityAmber, ReasonCoverage
	case m.par < th.AmberPAR:
		return SeverityAmber, ReasonAdequacy
	}
	return SeverityGreen, ReasonHealthy
}

// label texto y acción sugerida para el tablero. En GREEN el OTR solo cambia el texto.
func label(sev Severity, reason Reason, otr float64) (string, string) {
	switch sev {
	case SeverityRed:
		switch reason {
		case ReasonUnderstock:
			return "CRITICAL UNDERSTOCK", "Immediate procurement required"
		case ReasonCoverage:
			return "STOCKOUT RISK", "Expedite transfer or purchase"
		default:
			return "PROCUREMENT INADEQUATE", "Raise stock towards maximum level"
		}
	case SeverityAmber:
		switch reason {
		case ReasonUnderstock:
			return "LOW STOCK", "Plan procurement soon"
		case ReasonCoverage:
			return "STOCK DECLINING", "Monitor and prepare to reorder"
		default:
			return "MODERATE SHORTAGE", "Review procurement schedule"
		}
	case SeverityGreen:
		switch {
		case otr > 1.5:
			return "SEVERE OVERSTOCK", "Consider redistribution to other warehouses"
		case otr > 0.8:
			return "OVERSTOCKED", "Review incoming orders"
		case otr > 0.3:
			return "SLIGHTLY HIGH", "No action needed"
		default:
			return "OPTIMAL", "No action needed"
		}
	}
	return "NO DEMAND SIGNAL", "Register a forecast or minimum stock level"
}

// nearby subestaciones a menos de NearbyRadiusKm, ordenadas por distancia.
// Sin ubicación de bodega no hay subestaciones cercanas; las subestaciones sin
// coordenadas válidas se ignoran.
func (c *Classifier) nearby(loc *geo.Location, subs []entity.Substation) []NearbySubstation {
	if loc == nil || loc.Validate() != nil {
		return nil
	}
	var out []NearbySubstation
	for _, s := range subs {
		d, err := geo.Between(loc, s.Location)
		if err != nil || d > c.cfg.NearbyRadiusKm {
			continue
		}
		out = append(out, NearbySubstation{ID: s.ID, Code: s.Code, Name: s.Name, Capacity: s.Capacity, DistanceKm: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Evaluate calcula indicadores y severidad de un par material/bodega.
// Sin señal de demanda devuelve un trigger INDETERMINATE junto con ErrMissingDemandSignal;
// el trigger siempre es utilizable para reportes.
func (c *Classifier) Evaluate(in Input) (MaterialTrigger, error) {
	leadTime := in.LeadTimeDays
	if leadTime <= 0 {
		leadTime = c.cfg.DefaultLeadTimeDays
	}
	unitPrice := in.UnitPrice
	if unitPrice <= 0 {
		unitPrice = c.cfg.DefaultUnitPrice
	}
	stock := math.Max(0, in.Snapshot.QuantityAvailable)

	t := MaterialTrigger{
		MaterialID:        firstNonEmpty(in.Material.ID, in.Snapshot.MaterialID),
		MaterialName:      in.Material.Name,
		WarehouseID:       firstNonEmpty(in.Warehouse.ID, in.Snapshot.WarehouseID),
		WarehouseName:     in.Warehouse.Name,
		CurrentStock:      stock,
		LeadTimeDays:      leadTime,
		UnitPrice:         unitPrice,
		NearbySubstations: c.nearby(in.Warehouse.Location, in.Substations),
	}

	base, ok := c.demand.Estimate(in)
	if !ok || base.Daily <= 0 {
		err := fmt.Errorf("%w: material %s en bodega %s", domain.ErrMissingDemandSignal, t.MaterialID, t.WarehouseID)
		t.Severity = SeverityIndeterminate
		t.Reason = ReasonMissingDemand
		t.Label, t.Action = label(t.Severity, t.Reason, 0)
		t.DaysOfStock = math.Inf(1)
		t.Issue = err
		return t, err
	}

	multiplier := c.cfg.demandMultiplier(t.NearbySubstations)
	daily := base.Daily * multiplier
	m := c.computeMetrics(daily, leadTime, stock, in.MaxStockLevel)

	t.BaseDailyDemand = base.Daily
	t.DemandMultiplier = multiplier
	t.DailyDemand = daily
	t.DemandSource = base.Source
	t.SafetyStock = m.safetyStock
	t.ReorderPoint = m.reorderPoint
	t.MaxStock = m.maxStock
	t.UTR = m.utr
	t.OTR = m.otr
	t.PAR = m.par
	t.DaysOfStock = m.daysOfStock
	t.Severity, t.Reason = c.classify(m, leadTime)
	t.Label, t.Action = label(t.Severity, t.Reason, m.otr)
	return t, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
