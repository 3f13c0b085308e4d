package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/csvsource"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func baseFiles() map[string]string {
	return map[string]string{
		"warehouses.csv": "id,code,name,state,lat,lon,active\n" +
			"WH-DEL,DEL,Delhi Central,Delhi,28.6139,77.2090,true\n" +
			"WH-X,X,Sin coordenadas,Goa,,,1\n" +
			"WH-OLD,OLD,Cerrada,Delhi,28.6,77.2,false\n",
		"substations.csv": "id,name,capacity,lat,lon\n" +
			"SS-1,Ballabgarh,400kV,28.3390,77.3190\n",
		"materials.csv": "id,code,name,lead_time_days,unit_price\n" +
			"MAT-1,TR-100,Transformador 100kVA,14,2500.50\n",
		"stock.csv": "warehouse_id,material_id,available,reserved,min_stock\n" +
			"WH-DEL,MAT-1,60,5,70\n" +
			"WH-X,MAT-1,300,,\n",
	}
}

func TestLoad_LeeCatalogosYStock(t *testing.T) {
	ds, err := csvsource.Load(writeFiles(t, baseFiles()), csvsource.Options{})
	require.NoError(t, err)
	ctx := context.Background()

	whs, err := ds.Warehouses().List(ctx, true)
	require.NoError(t, err)
	require.Len(t, whs, 2)
	assert.Equal(t, "WH-DEL", whs[0].ID)
	require.NotNil(t, whs[0].Location)
	assert.InDelta(t, 77.2090, whs[0].Location.Lon, 1e-9)
	assert.Nil(t, whs[1].Location)

	mat, err := ds.Materials().GetByID(ctx, "MAT-1")
	require.NoError(t, err)
	assert.Equal(t, 14, mat.LeadTimeDays)
	assert.Equal(t, "2500.5", mat.UnitPrice.String())

	stock, err := ds.Stock().List(ctx, repository.StockFilter{WarehouseIDs: []string{"WH-DEL"}})
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.InDelta(t, 55.0, stock[0].Transferable(), 1e-9)
	assert.InDelta(t, 70.0, stock[0].MinStockLevel, 1e-9)

	demand, err := ds.Demand().DailyDemand(ctx)
	require.NoError(t, err)
	assert.Empty(t, demand)
}

func TestLoad_Latin1(t *testing.T) {
	files := baseFiles()
	enc, err := charmap.ISO8859_1.NewEncoder().String("id,name,capacity\nSS-9,Subestación Norte,132 kV\n")
	require.NoError(t, err)
	files["substations.csv"] = enc

	ds, err := csvsource.Load(writeFiles(t, files), csvsource.Options{Latin1: true})
	require.NoError(t, err)

	subs, err := ds.Substations().List(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Subestación Norte", subs[0].Name)
	assert.Nil(t, subs[0].Location)
}

func TestLoad_ErroresDeFormato(t *testing.T) {
	t.Run("columna obligatoria", func(t *testing.T) {
		files := baseFiles()
		files["stock.csv"] = "warehouse_id,available\nWH-DEL,10\n"
		_, err := csvsource.Load(writeFiles(t, files), csvsource.Options{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("valor no numérico", func(t *testing.T) {
		files := baseFiles()
		files["stock.csv"] = "warehouse_id,material_id,available\nWH-DEL,MAT-1,muchos\n"
		_, err := csvsource.Load(writeFiles(t, files), csvsource.Options{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "stock.csv:2")
	})
	t.Run("archivo faltante", func(t *testing.T) {
		files := baseFiles()
		delete(files, "materials.csv")
		_, err := csvsource.Load(writeFiles(t, files), csvsource.Options{})
		assert.Error(t, err)
	})
}

func TestStock_ActualizaEnMemoria(t *testing.T) {
	ds, err := csvsource.Load(writeFiles(t, baseFiles()), csvsource.Options{})
	require.NoError(t, err)
	ctx := context.Background()

	s, err := ds.Stock().GetForUpdate(ctx, "MAT-1", "WH-DEL")
	require.NoError(t, err)
	s.QuantityReserved = 20
	require.NoError(t, ds.Stock().UpdateQuantities(ctx, s))

	again, err := ds.Stock().Get(ctx, "MAT-1", "WH-DEL")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, again.Transferable(), 1e-9)

	missing, err := ds.Stock().Get(ctx, "MAT-1", "WH-OLD")
	require.NoError(t, err)
	assert.Zero(t, missing.QuantityAvailable)
}

func TestTxRunner_RevierteSiFalla(t *testing.T) {
	ds, err := csvsource.Load(writeFiles(t, baseFiles()), csvsource.Options{})
	require.NoError(t, err)
	ledger := csvsource.NewLedger()
	runner := csvsource.NewTxRunner(ds, ledger)
	ctx := context.Background()

	err = runner.Run(ctx, func(stock repository.StockRepository, _ repository.InventoryMovementRepository, transfers repository.TransferRepository, materials repository.MaterialRepository) error {
		s, err := stock.GetForUpdate(ctx, "MAT-1", "WH-DEL")
		if err != nil {
			return err
		}
		s.QuantityReserved = 55
		if err := stock.UpdateQuantities(ctx, s); err != nil {
			return err
		}
		if err := materials.UpdateUnitPrice(ctx, "MAT-1", decimal.NewFromInt(1)); err != nil {
			return err
		}
		if err := transfers.Create(ctx, &entity.MaterialTransfer{ID: "T-1", Code: "TRF-1", Status: entity.TransferStatusPlanned}); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	s, err := ds.Stock().Get(ctx, "MAT-1", "WH-DEL")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.QuantityReserved, 1e-9)

	m, err := ds.Materials().GetByID(ctx, "MAT-1")
	require.NoError(t, err)
	assert.Equal(t, "2500.5", m.UnitPrice.String())

	tr, err := ledger.Transfers().GetByID(ctx, "T-1")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestTxRunner_ConfirmaSiTerminaBien(t *testing.T) {
	ds, err := csvsource.Load(writeFiles(t, baseFiles()), csvsource.Options{})
	require.NoError(t, err)
	ledger := csvsource.NewLedger()
	ctx := context.Background()

	err = csvsource.NewTxRunner(ds, ledger).Run(ctx, func(_ repository.StockRepository, _ repository.InventoryMovementRepository, transfers repository.TransferRepository, _ repository.MaterialRepository) error {
		return transfers.Create(ctx, &entity.MaterialTransfer{ID: "T-1", Code: "TRF-1", Status: entity.TransferStatusPlanned})
	})
	require.NoError(t, err)

	tr, err := ledger.Transfers().GetByID(ctx, "T-1")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, entity.TransferStatusPlanned, tr.Status)
}
