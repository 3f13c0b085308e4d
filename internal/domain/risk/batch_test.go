package risk_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

func TestEvaluateBatch_ConservaOrdenYAislaErrores(t *testing.T) {
	cfg := risk.DefaultConfig()
	cfg.Workers = 4
	c := risk.NewClassifier(cfg, nil)

	inputs := make([]risk.Input, 50)
	for i := range inputs {
		in := forecastInput(float64(i*10), 10, 14)
		in.Material.ID = fmt.Sprintf("MAT-%02d", i)
		inputs[i] = in
	}
	inputs[7].SuppliedDailyDemand = 0

	items, err := c.EvaluateBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, items, len(inputs))
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("MAT-%02d", i), it.Trigger.MaterialID)
		if i == 7 {
			assert.ErrorIs(t, it.Err, domain.ErrMissingDemandSignal)
			continue
		}
		assert.NoError(t, it.Err)
	}
}

func TestEvaluateBatch_Vacio(t *testing.T) {
	items, err := risk.NewClassifier(risk.DefaultConfig(), nil).EvaluateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEvaluateBatch_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []risk.Input{forecastInput(10, 10, 14), forecastInput(20, 10, 14)}
	items, err := risk.NewClassifier(risk.DefaultConfig(), nil).EvaluateBatch(ctx, inputs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, items, len(inputs))
}

func TestBuildAlertFeed_OrdenYFiltro(t *testing.T) {
	asOf := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	triggers := []risk.MaterialTrigger{
		{MaterialID: "A", Severity: risk.SeverityAmber, UTR: 0.5, Label: "LOW STOCK"},
		{MaterialID: "B", Severity: risk.SeverityGreen},
		{MaterialID: "C", Severity: risk.SeverityRed, UTR: 0.75, Label: "CRITICAL UNDERSTOCK"},
		{MaterialID: "D", Severity: risk.SeverityRed, UTR: 0.9, Label: "CRITICAL UNDERSTOCK"},
		{MaterialID: "E", Severity: risk.SeverityIndeterminate},
	}

	feed := risk.BuildAlertFeed(triggers, nil, asOf)
	require.Len(t, feed, 3)
	assert.Equal(t, "D", feed[0].MaterialID)
	assert.Equal(t, "C", feed[1].MaterialID)
	assert.Equal(t, "A", feed[2].MaterialID)
	assert.Equal(t, "ALT-20261015-0001", feed[0].ID)
	assert.Equal(t, "ALT-20261015-0003", feed[2].ID)
	assert.Contains(t, feed[0].Message, "CRITICAL UNDERSTOCK")

	green := risk.BuildAlertFeed(triggers, []risk.Severity{risk.SeverityGreen}, asOf)
	require.Len(t, green, 1)
	assert.Equal(t, "B", green[0].MaterialID)
}

func TestDistribute(t *testing.T) {
	d := risk.Distribute([]risk.MaterialTrigger{
		{Severity: risk.SeverityRed}, {Severity: risk.SeverityGreen}, {Severity: risk.SeverityGreen}, {Severity: risk.SeverityAmber},
	})
	assert.Equal(t, 4, d.Total())
	assert.Equal(t, 2, d.Green)
	assert.InDelta(t, 0.25, d.Share(risk.SeverityRed), 1e-9)
	assert.Equal(t, 0.0, risk.Distribution{}.Share(risk.SeverityRed))
}

func TestSummarizeSavings(t *testing.T) {
	triggers := []risk.MaterialTrigger{
		{Severity: risk.SeverityRed, ReorderPoint: 210, CurrentStock: 60, MaxStock: 525, UnitPrice: 1000},
		{Severity: risk.SeverityGreen, ReorderPoint: 210, CurrentStock: 1125, MaxStock: 525, UnitPrice: 100},
		{Severity: risk.SeverityAmber, ReorderPoint: 210, CurrentStock: 140, MaxStock: 525, UnitPrice: 100},
	}

	s := risk.SummarizeSavings(risk.DefaultConfig(), triggers)
	// 150 u * 1000 * 35 %
	assert.True(t, decimal.NewFromInt(52500).Equal(s.ExpediteSavings), s.ExpediteSavings.String())
	// 600 u * 100 * 20 % / 12
	assert.True(t, decimal.NewFromInt(1000).Equal(s.HoldingSavings), s.HoldingSavings.String())
	assert.True(t, decimal.NewFromInt(53500).Equal(s.TotalSavings))
	assert.Equal(t, 1, s.RushOrdersAvoided)
	assert.Equal(t, 1, s.OptimalOrders)
	assert.Equal(t, 600.0, s.OverstockUnitsReduced)
}

func TestSummarizeSavings_RojoSinFaltanteNoCuentaUrgencia(t *testing.T) {
	// RED por PAR con un máximo informado muy alto: stock sobre el ROP, sin faltante.
	triggers := []risk.MaterialTrigger{
		{Severity: risk.SeverityRed, ReorderPoint: 210, CurrentStock: 300, MaxStock: 2000, UnitPrice: 1000},
	}

	s := risk.SummarizeSavings(risk.DefaultConfig(), triggers)
	assert.Zero(t, s.RushOrdersAvoided)
	assert.True(t, s.ExpediteSavings.IsZero(), s.ExpediteSavings.String())
}
