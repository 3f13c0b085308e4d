package risk

// Severity semáforo de riesgo de un par material/bodega.
type Severity string

const (
	SeverityRed           Severity = "RED"
	SeverityAmber         Severity = "AMBER"
	SeverityGreen         Severity = "GREEN"
	SeverityIndeterminate Severity = "INDETERMINATE"
)

// Priority orden de atención: 0 = más urgente.
func (s Severity) Priority() int {
	switch s {
	case SeverityRed:
		return 0
	case SeverityAmber:
		return 1
	case SeverityGreen:
		return 2
	default:
		return 3
	}
}

// NeedsReplenishment indica si el nivel exige buscar traslado o compra.
func (s Severity) NeedsReplenishment() bool {
	return s == SeverityRed || s == SeverityAmber
}

// ParseSeverity convierte un texto (p. ej. query string) en Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityRed, SeverityAmber, SeverityGreen, SeverityIndeterminate:
		return Severity(s), true
	}
	return "", false
}

// Reason regla que decidió el nivel.
type Reason string

const (
	ReasonUnderstock    Reason = "UTR"
	ReasonCoverage      Reason = "DAYS_OF_STOCK"
	ReasonAdequacy      Reason = "PAR"
	ReasonHealthy       Reason = "HEALTHY"
	ReasonMissingDemand Reason = "MISSING_DEMAND"
)

// NearbySubstation subestación dentro del radio de influencia de la bodega.
type NearbySubstation struct {
	ID         string
	Code       string
	Name       string
	Capacity   string
	DistanceKm float64
}

// MaterialTrigger resultado de evaluar un par material/bodega. Se crea en cada
// evaluación y nunca se modifica; una evaluación posterior lo reemplaza.
type MaterialTrigger struct {
	MaterialID    string
	MaterialName  string
	WarehouseID   string
	WarehouseName string

	Severity Severity
	Reason   Reason
	Label    string
	Action   string

	CurrentStock float64
	SafetyStock  float64
	ReorderPoint float64
	MaxStock     float64
	UTR          float64
	OTR          float64
	PAR          float64
	DaysOfStock  float64 // +Inf cuando la demanda es cero

	DailyDemand      float64
	BaseDailyDemand  float64
	DemandMultiplier float64
	DemandSource     string
	LeadTimeDays     int
	UnitPrice        float64

	NearbySubstations []NearbySubstation

	// Issue motivo por el que el par quedó INDETERMINATE (nil en los demás casos).
	Issue error
}

// Shortfall unidades que faltan para llevar el stock a ROP * fillFactor.
func (t MaterialTrigger) Shortfall(fillFactor float64) float64 {
	if fillFactor <= 0 {
		fillFactor = 1
	}
	if s := t.ReorderPoint*fillFactor - t.CurrentStock; s > 0 {
		return s
	}
	return 0
}
