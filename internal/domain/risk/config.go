package risk

import "runtime"

// Thresholds umbrales de la cascada RED → AMBER → GREEN.
// Los factores de cobertura se multiplican por el lead time.
type Thresholds struct {
	RedUTR           float64
	RedCoverFactor   float64
	RedPAR           float64
	AmberUTR         float64
	AmberCoverFactor float64
	AmberPAR         float64
}

// CapacityWeight peso de demanda de una subestación según su etiqueta de tensión.
type CapacityWeight struct {
	Tag    string
	Weight float64
}

// Config parámetros del motor de riesgo. Es un valor inmutable: el Classifier
// guarda su propia copia y no existen constantes globales mutables.
type Config struct {
	ServiceLevelZ      float64 // z del nivel de servicio (1.65 ≈ 95 %)
	DemandVariability  float64 // σ de la demanda diaria como fracción de la demanda
	MinBufferDays      float64 // piso del stock de seguridad y base semanal del fallback
	MaxStockMultiplier float64 // stock máximo = ROP * multiplicador si no viene informado

	NearbyRadiusKm        float64
	CapacityWeights       []CapacityWeight // evaluadas en orden, la primera coincidencia gana
	DefaultCapacityWeight float64
	MultiplierSlope       float64
	MaxDemandMultiplier   float64

	DefaultLeadTimeDays int
	DefaultUnitPrice    float64

	Thresholds Thresholds

	ExpeditePremium float64 // sobrecosto de una compra urgente
	HoldingCostRate float64 // costo anual de mantener inventario

	Workers int // goroutines para EvaluateBatch; <= 0 usa GOMAXPROCS
}

// DefaultConfig valores calibrados del motor.
func DefaultConfig() Config {
	return Config{
		ServiceLevelZ:      1.65,
		DemandVariability:  0.25,
		MinBufferDays:      7,
		MaxStockMultiplier: 2.5,

		NearbyRadiusKm: 200,
		CapacityWeights: []CapacityWeight{
			{Tag: "765KV", Weight: 3.0},
			{Tag: "400KV", Weight: 2.5},
			{Tag: "220KV", Weight: 2.0},
			{Tag: "132KV", Weight: 1.5},
			{Tag: "66KV", Weight: 1.2},
			{Tag: "33KV", Weight: 1.0},
			{Tag: "22KV", Weight: 0.8},
			{Tag: "11KV", Weight: 0.5},
		},
		DefaultCapacityWeight: 1.0,
		MultiplierSlope:       0.2,
		MaxDemandMultiplier:   3.0,

		DefaultLeadTimeDays: 14,
		DefaultUnitPrice:    50000,

		Thresholds: Thresholds{
			RedUTR:           0.7,
			RedCoverFactor:   0.5,
			RedPAR:           0.2,
			AmberUTR:         0.4,
			AmberCoverFactor: 1.0,
			AmberPAR:         0.4,
		},

		ExpeditePremium: 0.35,
		HoldingCostRate: 0.20,
	}
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) clone() Config {
	out := c
	out.CapacityWeights = append([]CapacityWeight(nil), c.CapacityWeights...)
	return out
}
