package csvsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Dataset snapshot completo de la red en memoria.
type Dataset struct {
	mu          sync.RWMutex
	warehouses  map[string]*entity.Warehouse
	substations []*entity.Substation
	materials   map[string]*entity.Material
	stock       map[repository.DemandKey]*entity.StockSnapshot
	demand      map[repository.DemandKey]float64
}

// Load lee los CSV de dir. demand.csv es opcional; los demás son obligatorios.
func Load(dir string, opts Options) (*Dataset, error) {
	ds := &Dataset{
		warehouses: map[string]*entity.Warehouse{},
		materials:  map[string]*entity.Material{},
		stock:      map[repository.DemandKey]*entity.StockSnapshot{},
		demand:     map[repository.DemandKey]float64{},
	}
	steps := []struct {
		file     string
		optional bool
		required []string
		load     func(*table) error
	}{
		{"warehouses.csv", false, []string{"id"}, ds.loadWarehouses},
		{"substations.csv", false, []string{"id", "capacity"}, ds.loadSubstations},
		{"materials.csv", false, []string{"id"}, ds.loadMaterials},
		{"stock.csv", false, []string{"material_id", "warehouse_id", "available"}, ds.loadStock},
		{"demand.csv", true, []string{"material_id", "warehouse_id", "daily_demand"}, ds.loadDemand},
	}
	for _, s := range steps {
		t, err := readTable(filepath.Join(dir, s.file), opts, s.required...)
		if s.optional && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: %w", err)
		}
		if err := s.load(t); err != nil {
			return nil, fmt.Errorf("csvsource: %w", err)
		}
	}
	return ds, nil
}

func location(r row) (*geo.Location, error) {
	lat, err := r.optFloat("lat")
	if err != nil {
		return nil, err
	}
	lon, err := r.optFloat("lon")
	if err != nil {
		return nil, err
	}
	if lat == nil || lon == nil {
		return nil, nil
	}
	return &geo.Location{Lat: *lat, Lon: *lon}, nil
}

func (ds *Dataset) loadWarehouses(t *table) error {
	return t.each(func(r row) error {
		loc, err := location(r)
		if err != nil {
			return err
		}
		id := r.str("id")
		if id == "" {
			return r.errf("bodega sin id")
		}
		ds.warehouses[id] = &entity.Warehouse{
			ID:       id,
			Code:     r.str("code"),
			Name:     r.str("name"),
			State:    r.str("state"),
			Region:   r.str("region"),
			Location: loc,
			IsActive: r.bool("active", true),
		}
		return nil
	})
}

func (ds *Dataset) loadSubstations(t *table) error {
	return t.each(func(r row) error {
		loc, err := location(r)
		if err != nil {
			return err
		}
		ds.substations = append(ds.substations, &entity.Substation{
			ID:                 r.str("id"),
			Code:               r.str("code"),
			Name:               r.str("name"),
			Capacity:           r.str("capacity"),
			Location:           loc,
			PrimaryWarehouseID: r.str("primary_warehouse_id"),
		})
		return nil
	})
}

func (ds *Dataset) loadMaterials(t *table) error {
	return t.each(func(r row) error {
		lt, err := r.int("lead_time_days")
		if err != nil {
			return err
		}
		price := decimal.Zero
		if s := r.str("unit_price"); s != "" {
			if price, err = decimal.NewFromString(s); err != nil {
				return r.errf("unit_price %q inválido", s)
			}
		}
		id := r.str("id")
		ds.materials[id] = &entity.Material{
			ID:           id,
			Code:         r.str("code"),
			Name:         r.str("name"),
			Category:     r.str("category"),
			Unit:         r.str("unit"),
			LeadTimeDays: lt,
			UnitPrice:    price,
		}
		return nil
	})
}

func (ds *Dataset) loadStock(t *table) error {
	return t.each(func(r row) error {
		s := &entity.StockSnapshot{MaterialID: r.str("material_id"), WarehouseID: r.str("warehouse_id")}
		fields := []struct {
			col string
			dst *float64
		}{
			{"available", &s.QuantityAvailable},
			{"reserved", &s.QuantityReserved},
			{"in_transit", &s.QuantityInTransit},
			{"reorder_point", &s.ReorderPoint},
			{"min_stock", &s.MinStockLevel},
			{"max_stock", &s.MaxStockLevel},
			{"unit_price", &s.UnitPrice},
		}
		for _, f := range fields {
			v, err := r.float(f.col)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		lt, err := r.int("lead_time_days")
		if err != nil {
			return err
		}
		s.LeadTimeDays = lt
		ds.stock[repository.DemandKey{MaterialID: s.MaterialID, WarehouseID: s.WarehouseID}] = s
		return nil
	})
}

func (ds *Dataset) loadDemand(t *table) error {
	return t.each(func(r row) error {
		d, err := r.float("daily_demand")
		if err != nil {
			return err
		}
		if d > 0 {
			ds.demand[repository.DemandKey{MaterialID: r.str("material_id"), WarehouseID: r.str("warehouse_id")}] = d
		}
		return nil
	})
}

// Warehouses puerto de bodegas.
func (ds *Dataset) Warehouses() repository.WarehouseRepository { return warehouseRepo{ds} }

// Substations puerto de subestaciones.
func (ds *Dataset) Substations() repository.SubstationRepository { return substationRepo{ds} }

// Materials puerto de materiales.
func (ds *Dataset) Materials() repository.MaterialRepository { return materialRepo{ds} }

// Stock puerto de stock. Las actualizaciones solo viven en memoria.
func (ds *Dataset) Stock() repository.StockRepository { return stockRepo{ds} }

// Demand pronóstico cargado de demand.csv (vacío si no existe).
func (ds *Dataset) Demand() repository.DemandForecastRepository { return demandRepo{ds} }

type warehouseRepo struct{ ds *Dataset }

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	w, ok := r.ds.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r warehouseRepo) List(_ context.Context, activeOnly bool) ([]*entity.Warehouse, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.ds.warehouses))
	for _, w := range r.ds.warehouses {
		if activeOnly && !w.IsActive {
			continue
		}
		c := *w
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type substationRepo struct{ ds *Dataset }

func (r substationRepo) List(context.Context) ([]*entity.Substation, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	out := make([]*entity.Substation, len(r.ds.substations))
	for i, s := range r.ds.substations {
		c := *s
		out[i] = &c
	}
	return out, nil
}

type materialRepo struct{ ds *Dataset }

func (r materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	m, ok := r.ds.materials[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r materialRepo) List(context.Context) ([]*entity.Material, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	out := make([]*entity.Material, 0, len(r.ds.materials))
	for _, m := range r.ds.materials {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r materialRepo) UpdateUnitPrice(_ context.Context, id string, price decimal.Decimal) error {
	r.ds.mu.Lock()
	defer r.ds.mu.Unlock()
	m, ok := r.ds.materials[id]
	if !ok {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	m.UnitPrice = price
	return nil
}

type stockRepo struct{ ds *Dataset }

func (r stockRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.StockSnapshot, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	mats, whs := set(f.MaterialIDs), set(f.WarehouseIDs)
	out := make([]*entity.StockSnapshot, 0, len(r.ds.stock))
	for k, s := range r.ds.stock {
		if (mats != nil && !mats[k.MaterialID]) || (whs != nil && !whs[k.WarehouseID]) {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaterialID != out[j].MaterialID {
			return out[i].MaterialID < out[j].MaterialID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

// Get devuelve un snapshot en cero si el par no existe, igual que el repositorio SQL.
func (r stockRepo) Get(_ context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	if s, ok := r.ds.stock[repository.DemandKey{MaterialID: materialID, WarehouseID: warehouseID}]; ok {
		c := *s
		return &c, nil
	}
	return &entity.StockSnapshot{MaterialID: materialID, WarehouseID: warehouseID}, nil
}

func (r stockRepo) GetForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.StockSnapshot, error) {
	return r.Get(ctx, materialID, warehouseID)
}

func (r stockRepo) UpdateQuantities(_ context.Context, s *entity.StockSnapshot) error {
	r.ds.mu.Lock()
	defer r.ds.mu.Unlock()
	k := repository.DemandKey{MaterialID: s.MaterialID, WarehouseID: s.WarehouseID}
	cur, ok := r.ds.stock[k]
	if !ok {
		c := *s
		r.ds.stock[k] = &c
		return nil
	}
	cur.QuantityAvailable = s.QuantityAvailable
	cur.QuantityReserved = s.QuantityReserved
	cur.QuantityInTransit = s.QuantityInTransit
	cur.UpdatedAt = s.UpdatedAt
	return nil
}

type demandRepo struct{ ds *Dataset }

func (r demandRepo) DailyDemand(context.Context) (map[repository.DemandKey]float64, error) {
	r.ds.mu.RLock()
	defer r.ds.mu.RUnlock()
	out := make(map[repository.DemandKey]float64, len(r.ds.demand))
	for k, v := range r.ds.demand {
		out[k] = v
	}
	return out, nil
}

func set(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
