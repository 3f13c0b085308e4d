package risk

import "strings"

// BaseDemand demanda diaria base antes del multiplicador por subestaciones.
type BaseDemand struct {
	Daily  float64
	Source string
}

// DemandStrategy obtiene la demanda diaria base de un par material/bodega.
// Devuelve ok=false cuando no tiene señal suficiente.
type DemandStrategy interface {
	Estimate(in Input) (BaseDemand, bool)
}

// SuppliedDemand usa el pronóstico informado por el colaborador externo.
type SuppliedDemand struct{}

func (SuppliedDemand) Estimate(in Input) (BaseDemand, bool) {
	if in.SuppliedDailyDemand > 0 {
		return BaseDemand{Daily: in.SuppliedDailyDemand, Source: "forecast"}, true
	}
	return BaseDemand{}, false
}

// SafetyStockFallback deriva la demanda del stock mínimo: min / BufferDays.
type SafetyStockFallback struct {
	BufferDays float64
}

func (f SafetyStockFallback) Estimate(in Input) (BaseDemand, bool) {
	days := f.BufferDays
	if days <= 0 {
		days = 7
	}
	if in.Snapshot.MinStockLevel > 0 {
		return BaseDemand{Daily: in.Snapshot.MinStockLevel / days, Source: "min_stock"}, true
	}
	return BaseDemand{}, false
}

// FirstAvailable prueba las estrategias en orden y usa la primera con señal.
type FirstAvailable []DemandStrategy

func (s FirstAvailable) Estimate(in Input) (BaseDemand, bool) {
	for _, strategy := range s {
		if d, ok := strategy.Estimate(in); ok {
			return d, true
		}
	}
	return BaseDemand{}, false
}

// DefaultDemandStrategy pronóstico si existe; si no, stock mínimo / 7.
func DefaultDemandStrategy(cfg Config) DemandStrategy {
	return FirstAvailable{SuppliedDemand{}, SafetyStockFallback{BufferDays: cfg.MinBufferDays}}
}

// capacityWeight peso de una etiqueta de tensión. Ignora espacios y mayúsculas:
// "132 kV", "132KV" y "132kv" son equivalentes.
func (c Config) capacityWeight(capacity string) float64 {
	key := strings.ToUpper(strings.ReplaceAll(capacity, " ", ""))
	if key != "" {
		for _, w := range c.CapacityWeights {
			if strings.Contains(key, strings.ToUpper(w.Tag)) {
				return w.Weight
			}
		}
	}
	return c.DefaultCapacityWeight
}

// demandMultiplier 1 + (Σpesos - 1) * pendiente cuando Σpesos > 1, con tope.
func (c Config) demandMultiplier(nearby []NearbySubstation) float64 {
	total := 0.0
	for _, s := range nearby {
		total += c.capacityWeight(s.Capacity)
	}
	m := 1.0
	if total > 1 {
		m = 1 + (total-1)*c.MultiplierSlope
	}
	if c.MaxDemandMultiplier > 0 && m > c.MaxDemandMultiplier {
		m = c.MaxDemandMultiplier
	}
	return m
}
