package inventory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/csvsource"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// Demanda por fallback: min_stock 70 / 7 = 10 u/día, lead time 14 → ROP 210, máximo 525.
const (
	warehousesCSV = "id,code,name,state,lat,lon,active\n" +
		"WH-DEL,DEL,Delhi Central,Delhi,28.6139,77.2090,true\n" +
		"WH-JAI,JAI,Jaipur Hub,Rajasthan,26.9124,75.7873,true\n" +
		"WH-MUM,MUM,Mumbai Port,Maharashtra,19.0760,72.8777,true\n" +
		"WH-OLD,OLD,Bodega cerrada,Delhi,28.70,77.10,false\n"
	substationsCSV = "id,name,capacity,lat,lon\n"
	materialsCSV   = "id,code,name,lead_time_days,unit_price\n" +
		"MAT-1,TR-100,Transformador 100kVA,14,100\n"
)

type network struct {
	ds        *csvsource.Dataset
	ledger    *csvsource.Ledger
	risk      *inventory.RiskUseCase
	planning  *inventory.TransferPlanningUseCase
	lifecycle *inventory.TransferLifecycleUseCase
	purchase  *inventory.ReplenishmentUseCase
}

func newNetwork(t *testing.T, stockCSV string) *network {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"warehouses.csv":  warehousesCSV,
		"substations.csv": substationsCSV,
		"materials.csv":   materialsCSV,
		"stock.csv":       stockCSV,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	ds, err := csvsource.Load(dir, csvsource.Options{})
	require.NoError(t, err)

	log := logger.Nop()
	ledger := csvsource.NewLedger()
	rc, tc := risk.DefaultConfig(), transfer.DefaultConfig()
	rc.Workers = 2

	riskUC := inventory.NewRiskUseCase(ds.Stock(), ds.Materials(), ds.Warehouses(), ds.Substations(), ds.Demand(), risk.NewClassifier(rc, nil), log)
	planning := inventory.NewTransferPlanningUseCase(riskUC, ds.Stock(), tc, log)
	return &network{
		ds:        ds,
		ledger:    ledger,
		risk:      riskUC,
		planning:  planning,
		lifecycle: inventory.NewTransferLifecycleUseCase(csvsource.NewTxRunner(ds, ledger), ds.Warehouses(), ds.Materials(), ledger.Transfers(), tc, rc.DefaultUnitPrice, log),
		purchase:  inventory.NewReplenishmentUseCase(planning),
	}
}

func triggerFor(t *testing.T, triggers []risk.MaterialTrigger, warehouseID string) risk.MaterialTrigger {
	t.Helper()
	for _, tr := range triggers {
		if tr.WarehouseID == warehouseID {
			return tr
		}
	}
	t.Fatalf("sin trigger para %s", warehouseID)
	return risk.MaterialTrigger{}
}

func TestEvaluateNetwork_ClasificaLaRed(t *testing.T) {
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,500,70\n"+
		"MAT-1,WH-MUM,140,70\n"+
		"MAT-1,WH-OLD,10,70\n"+
		"MAT-1,WH-GHOST,10,70\n")

	ev, err := n.risk.EvaluateNetwork(context.Background(), inventory.NetworkFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, ev.Failed, "la bodega desconocida cuenta como fallida")
	assert.Equal(t, risk.Distribution{Red: 1, Amber: 1, Green: 1}, ev.Distribution)

	del := triggerFor(t, ev.Triggers, "WH-DEL")
	assert.Equal(t, risk.SeverityRed, del.Severity)
	assert.Equal(t, "Delhi Central", del.WarehouseName)
	assert.Equal(t, "Transformador 100kVA", del.MaterialName)
	assert.InDelta(t, 210.0, del.ReorderPoint, 1e-9)
	assert.Equal(t, "min_stock", del.DemandSource)

	require.Len(t, ev.Alerts, 2)
	assert.Equal(t, risk.SeverityRed, ev.Alerts[0].Severity)
	assert.True(t, ev.Savings.TotalSavings.IsPositive())
}

func TestEvaluateNetwork_FiltroDeSeveridadSoloAfectaLaSalida(t *testing.T) {
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,500,70\n"+
		"MAT-1,WH-MUM,140,70\n")

	ev, err := n.risk.EvaluateNetwork(context.Background(), inventory.NetworkFilter{Severities: []risk.Severity{risk.SeverityAmber}})
	require.NoError(t, err)

	require.Len(t, ev.Triggers, 1)
	assert.Equal(t, "WH-MUM", ev.Triggers[0].WarehouseID)
	require.Len(t, ev.Alerts, 1)
	assert.Equal(t, 3, ev.Distribution.Total())
}

func TestEvaluateNetwork_SinDemandaEsIndeterminado(t *testing.T) {
	n := newNetwork(t, "material_id,warehouse_id,available\nMAT-1,WH-DEL,60\n")

	ev, err := n.risk.EvaluateNetwork(context.Background(), inventory.NetworkFilter{})
	require.NoError(t, err)

	require.Len(t, ev.Triggers, 1)
	assert.Equal(t, risk.SeverityIndeterminate, ev.Triggers[0].Severity)
	assert.Equal(t, 1, ev.Distribution.Indeterminate)
	assert.Empty(t, ev.Alerts)
	assert.Zero(t, ev.Failed)
}

func TestPlanTransfers_CubreFaltantesDesdeBodegaSana(t *testing.T) {
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,500,70\n"+
		"MAT-1,WH-MUM,140,70\n")

	res, err := n.planning.PlanTransfers(context.Background(), inventory.NetworkFilter{})
	require.NoError(t, err)

	require.Len(t, res.Result.Allocations, 2)
	first := res.Result.Allocations[0]
	assert.Equal(t, "WH-DEL", first.Trigger.WarehouseID, "RED se atiende primero")
	assert.Equal(t, transfer.StatusFulfilled, first.Status)
	assert.InDelta(t, 150.0, first.Allocated, 1e-9)
	require.Len(t, first.Plans, 1)
	assert.Equal(t, "WH-JAI", first.Plans[0].SourceWarehouseID)

	assert.Equal(t, 2, res.Result.Count(transfer.StatusFulfilled))
	total := 0.0
	for _, p := range res.Result.Plans() {
		total += p.Quantity
	}
	assert.LessOrEqual(t, total, 500.0)

	dto := inventory.ToPlanResponse(res)
	assert.Equal(t, 2, dto.Fulfilled)
	assert.False(t, dto.Allocations[0].Plans[0].DeliveryDate.Before(res.GeneratedAt))
}

func TestPlanTransfers_FiltroDeBodegasNoDrenaFuentesConFaltante(t *testing.T) {
	// JAI queda AMBER (PAR 150/525 < 0.4): no puede despachar aunque el filtro solo pida DEL.
	stock := "material_id,warehouse_id,available,min_stock\n" +
		"MAT-1,WH-DEL,20,70\n" +
		"MAT-1,WH-JAI,150,70\n"

	for name, filter := range map[string]inventory.NetworkFilter{
		"sin filtro": {},
		"solo delhi": {WarehouseIDs: []string{"WH-DEL"}},
	} {
		t.Run(name, func(t *testing.T) {
			n := newNetwork(t, stock)
			res, err := n.planning.PlanTransfers(context.Background(), filter)
			require.NoError(t, err)

			var del *transfer.Allocation
			for i := range res.Result.Allocations {
				if res.Result.Allocations[i].Trigger.WarehouseID == "WH-DEL" {
					del = &res.Result.Allocations[i]
				}
			}
			require.NotNil(t, del)
			assert.Equal(t, transfer.StatusUnfulfillable, del.Status)
			assert.Empty(t, res.Result.Plans())
		})
	}
}

func TestGeneratePurchaseList_RemanenteNoCubierto(t *testing.T) {
	// JAI sin stock mínimo: INDETERMINATE, sirve como fuente pero solo tiene 100.
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,100,\n"+
		"MAT-1,WH-MUM,140,70\n")

	list, err := n.purchase.GeneratePurchaseList(context.Background(), inventory.NetworkFilter{})
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	red, amber := list.Items[0], list.Items[1]
	assert.Equal(t, "WH-DEL", red.WarehouseID)
	assert.Equal(t, 1, red.Priority)
	assert.Equal(t, "50", red.Quantity.String())
	assert.Equal(t, "5000", red.EstimatedCost.String())
	assert.True(t, red.Expedite, "6 días de cobertura contra 14 de lead time")

	assert.Equal(t, "WH-MUM", amber.WarehouseID)
	assert.Equal(t, 2, amber.Priority)
	assert.Equal(t, "70", amber.Quantity.String())
	assert.False(t, amber.Expedite)
	assert.Equal(t, "12000", list.TotalCost.String())
}

func TestTransferLifecycle_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,500,70\n")

	tr, err := n.lifecycle.Apply(ctx, transfer.Plan{
		MaterialID: "MAT-1", SourceWarehouseID: "WH-JAI", DestinationWarehouseID: "WH-DEL",
		Quantity: 150, Severity: risk.SeverityRed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPlanned, tr.Status)
	assert.Regexp(t, `^TRF-\d{8}-[0-9A-F]{8}$`, tr.Code)
	assert.True(t, tr.TransportCost.IsPositive())
	assert.Equal(t, "15000", tr.MaterialCost.String())

	src, err := n.ds.Stock().Get(ctx, "MAT-1", "WH-JAI")
	require.NoError(t, err)
	assert.InDelta(t, 150.0, src.QuantityReserved, 1e-9)
	assert.InDelta(t, 350.0, src.Transferable(), 1e-9)

	tr, err = n.lifecycle.Dispatch(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, tr.Status)
	require.NotNil(t, tr.DispatchedAt)

	src, _ = n.ds.Stock().Get(ctx, "MAT-1", "WH-JAI")
	dst, _ := n.ds.Stock().Get(ctx, "MAT-1", "WH-DEL")
	assert.InDelta(t, 350.0, src.QuantityAvailable, 1e-9)
	assert.Zero(t, src.QuantityReserved)
	assert.InDelta(t, 150.0, dst.QuantityInTransit, 1e-9)

	tr, err = n.lifecycle.Complete(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusDelivered, tr.Status)

	dst, _ = n.ds.Stock().Get(ctx, "MAT-1", "WH-DEL")
	assert.InDelta(t, 210.0, dst.QuantityAvailable, 1e-9)
	assert.Zero(t, dst.QuantityInTransit)

	mat, err := n.ds.Materials().GetByID(ctx, "MAT-1")
	require.NoError(t, err)
	assert.True(t, mat.UnitPrice.GreaterThan(tr.UnitCost), "el flete sube el costo promedio")

	movs, err := n.ledger.Movements().ListByTransaction(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeTransferOut, movs[0].Type)
	assert.Equal(t, entity.MovementTypeTransferIn, movs[1].Type)

	_, err = n.lifecycle.Complete(ctx, tr.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = n.lifecycle.Cancel(ctx, tr.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransferLifecycle_CancelarDevuelveStock(t *testing.T) {
	ctx := context.Background()
	n := newNetwork(t, "material_id,warehouse_id,available,min_stock\n"+
		"MAT-1,WH-DEL,60,70\n"+
		"MAT-1,WH-JAI,500,70\n")
	plan := transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-JAI", DestinationWarehouseID: "WH-DEL", Quantity: 100}

	planned, err := n.lifecycle.Apply(ctx, plan)
	require.NoError(t, err)
	cancelled, err := n.lifecycle.Cancel(ctx, planned.ID, "cambio de prioridad")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, cancelled.Status)
	assert.Equal(t, "cambio de prioridad", cancelled.Reason)
	src, _ := n.ds.Stock().Get(ctx, "MAT-1", "WH-JAI")
	assert.Zero(t, src.QuantityReserved)

	inTransit, err := n.lifecycle.Apply(ctx, plan)
	require.NoError(t, err)
	_, err = n.lifecycle.Dispatch(ctx, inTransit.ID)
	require.NoError(t, err)
	_, err = n.lifecycle.Cancel(ctx, inTransit.ID, "")
	require.NoError(t, err)

	src, _ = n.ds.Stock().Get(ctx, "MAT-1", "WH-JAI")
	dst, _ := n.ds.Stock().Get(ctx, "MAT-1", "WH-DEL")
	assert.InDelta(t, 500.0, src.QuantityAvailable, 1e-9)
	assert.Zero(t, dst.QuantityInTransit)

	list, err := n.lifecycle.List(ctx, "cancelled", 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTransferLifecycle_Validaciones(t *testing.T) {
	ctx := context.Background()
	n := newNetwork(t, "material_id,warehouse_id,available,reserved,min_stock\n"+
		"MAT-1,WH-DEL,60,,70\n"+
		"MAT-1,WH-JAI,500,450,70\n")

	cases := []struct {
		name string
		plan transfer.Plan
		want error
	}{
		{"mismo origen y destino", transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-DEL", DestinationWarehouseID: "WH-DEL", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-JAI", DestinationWarehouseID: "WH-DEL"}, domain.ErrInvalidInput},
		{"bodega inexistente", transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-NOPE", DestinationWarehouseID: "WH-DEL", Quantity: 1}, domain.ErrNotFound},
		{"origen inactivo", transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-OLD", DestinationWarehouseID: "WH-DEL", Quantity: 1}, domain.ErrConflict},
		{"reservado no es transferible", transfer.Plan{MaterialID: "MAT-1", SourceWarehouseID: "WH-JAI", DestinationWarehouseID: "WH-DEL", Quantity: 60}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.lifecycle.Apply(ctx, tc.plan)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	list, err := n.lifecycle.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "un Apply fallido no deja traslados")

	_, err = n.lifecycle.Dispatch(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
