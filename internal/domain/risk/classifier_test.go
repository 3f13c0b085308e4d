package risk_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

var (
	delhi  = geo.Location{Lat: 28.6139, Lon: 77.2090}
	mumbai = geo.Location{Lat: 19.0760, Lon: 72.8777}
)

func kmNorth(l geo.Location, km float64) *geo.Location {
	return &geo.Location{Lat: l.Lat + km/(geo.EarthRadiusKm*math.Pi/180), Lon: l.Lon}
}

func forecastInput(stock, demand float64, leadTime int) risk.Input {
	return risk.Input{
		Snapshot:            entity.StockSnapshot{MaterialID: "MAT-1", WarehouseID: "WH-1", QuantityAvailable: stock},
		Warehouse:           entity.Warehouse{ID: "WH-1", Name: "Bodega Norte", Location: &delhi, IsActive: true},
		Material:            entity.Material{ID: "MAT-1", Name: "Transformador 10 MVA"},
		LeadTimeDays:        leadTime,
		UnitPrice:           1000,
		SuppliedDailyDemand: demand,
	}
}

func TestEvaluate_EscenarioDeReferencia(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)

	cases := []struct {
		name     string
		stock    float64
		severity risk.Severity
		reason   risk.Reason
		label    string
	}{
		{"stock bajo es RED por UTR", 60, risk.SeverityRed, risk.ReasonUnderstock, "CRITICAL UNDERSTOCK"},
		{"stock medio es AMBER por PAR", 140, risk.SeverityAmber, risk.ReasonAdequacy, "MODERATE SHORTAGE"},
		{"stock alto es GREEN", 400, risk.SeverityGreen, risk.ReasonHealthy, "OPTIMAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := c.Evaluate(forecastInput(tc.stock, 10, 14))
			require.NoError(t, err)
			assert.InDelta(t, 70, tr.SafetyStock, 1e-9)
			assert.InDelta(t, 210, tr.ReorderPoint, 1e-9)
			assert.InDelta(t, 525, tr.MaxStock, 1e-9)
			assert.Equal(t, tc.severity, tr.Severity)
			assert.Equal(t, tc.reason, tr.Reason)
			assert.Equal(t, tc.label, tr.Label)
			assert.Equal(t, "forecast", tr.DemandSource)
		})
	}
}

func TestEvaluate_StockDeSeguridadPorVariabilidad(t *testing.T) {
	// Con lead time largo domina z * σ * √LT sobre el piso de 7 días.
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	tr, err := c.Evaluate(forecastInput(1000, 10, 400))
	require.NoError(t, err)
	assert.InDelta(t, 1.65*2.5*20, tr.SafetyStock, 1e-9)
	assert.InDelta(t, 4000+82.5, tr.ReorderPoint, 1e-9)
}

func TestEvaluate_FallbackPorStockMinimo(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(100, 0, 14)
	in.Snapshot.MinStockLevel = 70

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, "min_stock", tr.DemandSource)
	assert.InDelta(t, 10, tr.DailyDemand, 1e-9)
	assert.GreaterOrEqual(t, tr.ReorderPoint, in.Snapshot.MinStockLevel)
}

func TestEvaluate_ROPNuncaMenorAlMinimo(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	for _, minStock := range []float64{1, 7, 35, 140, 999} {
		for _, lt := range []int{1, 3, 14, 60} {
			in := forecastInput(0, 0, lt)
			in.Snapshot.MinStockLevel = minStock
			tr, err := c.Evaluate(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tr.ReorderPoint+1e-9, minStock, "min=%v lt=%d", minStock, lt)
			assert.GreaterOrEqual(t, tr.ReorderPoint, tr.SafetyStock)
		}
	}
}

func TestEvaluate_SinSenalDeDemandaEsIndeterminado(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	tr, err := c.Evaluate(forecastInput(50, 0, 14))

	require.ErrorIs(t, err, domain.ErrMissingDemandSignal)
	assert.Equal(t, risk.SeverityIndeterminate, tr.Severity)
	assert.ErrorIs(t, tr.Issue, domain.ErrMissingDemandSignal)
	assert.Equal(t, "MAT-1", tr.MaterialID)
	assert.True(t, math.IsInf(tr.DaysOfStock, 1))
}

func TestEvaluate_ValoresPorDefecto(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(100, 5, 0)
	in.UnitPrice = 0

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 14, tr.LeadTimeDays)
	assert.Equal(t, 50000.0, tr.UnitPrice)
}

func TestEvaluate_VerdeImplicaUmbralesSanos(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	for _, demand := range []float64{0.5, 3, 10, 42} {
		for _, lt := range []int{1, 7, 14, 45} {
			for stock := 0.0; stock <= 5000; stock += 37 {
				tr, err := c.Evaluate(forecastInput(stock, demand, lt))
				require.NoError(t, err)
				if tr.Severity != risk.SeverityGreen {
					continue
				}
				assert.LessOrEqual(t, tr.UTR, 0.4)
				assert.GreaterOrEqual(t, tr.DaysOfStock, float64(lt))
				assert.GreaterOrEqual(t, tr.PAR, 0.4)
			}
		}
	}
}

func TestEvaluate_SeveridadMonotonaEnStock(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	for _, lt := range []int{3, 14, 30} {
		prev := -1
		for stock := 0.0; stock <= 800; stock += 5 {
			tr, err := c.Evaluate(forecastInput(stock, 10, lt))
			require.NoError(t, err)
			p := tr.Severity.Priority()
			assert.GreaterOrEqual(t, p, prev, "stock=%v lt=%d", stock, lt)
			prev = p
		}
	}
}

func TestEvaluate_StockMaximoInformado(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)

	in := forecastInput(400, 10, 14)
	in.MaxStockLevel = 300
	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, risk.SeverityGreen, tr.Severity)
	assert.InDelta(t, 1.0/3, tr.OTR, 1e-9)
	assert.Equal(t, "SLIGHTLY HIGH", tr.Label)

	in.MaxStockLevel = 100
	tr, err = c.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, risk.SeverityGreen, tr.Severity, "el sobrestock no eleva la severidad")
	assert.Equal(t, "SEVERE OVERSTOCK", tr.Label)
}

func TestEvaluate_SubestacionesCercanas(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(400, 10, 14)
	in.Substations = []entity.Substation{
		{ID: "SS-MUM", Capacity: "765kV", Location: &mumbai},
		{ID: "SS-150", Capacity: "400 kV", Location: kmNorth(delhi, 150)},
		{ID: "SS-SIN-UBICACION", Capacity: "765kV"},
	}

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	require.Len(t, tr.NearbySubstations, 1, "Mumbai queda a ~1148 km, fuera del radio")
	assert.Equal(t, "SS-150", tr.NearbySubstations[0].ID)
	assert.InDelta(t, 150, tr.NearbySubstations[0].DistanceKm, 0.01)
	// peso 2.5 → 1 + 1.5 * 0.2
	assert.InDelta(t, 1.3, tr.DemandMultiplier, 1e-9)
	assert.InDelta(t, 13, tr.DailyDemand, 1e-9)
	assert.InDelta(t, 10, tr.BaseDailyDemand, 1e-9)
}

func TestEvaluate_MultiplicadorConTope(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(400, 10, 14)
	for i := 0; i < 12; i++ {
		in.Substations = append(in.Substations, entity.Substation{
			ID: string(rune('A' + i)), Capacity: "765KV", Location: kmNorth(delhi, float64(10+i)),
		})
	}

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Len(t, tr.NearbySubstations, 12)
	assert.Equal(t, 3.0, tr.DemandMultiplier)
	assert.Equal(t, "A", tr.NearbySubstations[0].ID, "ordenadas por distancia")
}

func TestEvaluate_EtiquetaDesconocidaPesaUno(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(400, 10, 14)
	in.Substations = []entity.Substation{{ID: "SS-X", Capacity: "sin dato", Location: kmNorth(delhi, 20)}}

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr.DemandMultiplier)
}

func TestEvaluate_BodegaSinUbicacion(t *testing.T) {
	c := risk.NewClassifier(risk.DefaultConfig(), nil)
	in := forecastInput(400, 10, 14)
	in.Warehouse.Location = nil
	in.Substations = []entity.Substation{{ID: "SS-1", Capacity: "765kV", Location: kmNorth(delhi, 5)}}

	tr, err := c.Evaluate(in)
	require.NoError(t, err)
	assert.Empty(t, tr.NearbySubstations)
	assert.Equal(t, 1.0, tr.DemandMultiplier)
}

func TestNewInput_TomaDatosDelMaterialYDelStock(t *testing.T) {
	snap := entity.StockSnapshot{MaterialID: "M", WarehouseID: "W", LeadTimeDays: 21, UnitPrice: 80, MaxStockLevel: 900}
	in := risk.NewInput(snap, entity.Material{ID: "M"}, entity.Warehouse{ID: "W"}, nil)

	assert.Equal(t, 21, in.LeadTimeDays)
	assert.Equal(t, 80.0, in.UnitPrice)
	assert.Equal(t, 900.0, in.MaxStockLevel)
}

func TestParseSeverity(t *testing.T) {
	s, ok := risk.ParseSeverity("AMBER")
	assert.True(t, ok)
	assert.Equal(t, risk.SeverityAmber, s)

	_, ok = risk.ParseSeverity("amber")
	assert.False(t, ok)
}
