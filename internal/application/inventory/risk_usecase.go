package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// NetworkFilter restringe la evaluación. Listas vacías = toda la red.
// Severities solo filtra la salida (triggers y alertas); la distribución
// y el ahorro se calculan sobre todos los pares evaluados.
type NetworkFilter struct {
	MaterialIDs  []string
	WarehouseIDs []string
	Severities   []risk.Severity
}

// NetworkEvaluation resultado de evaluar la red.
type NetworkEvaluation struct {
	EvaluatedAt  time.Time
	Triggers     []risk.MaterialTrigger
	Alerts       []risk.Alert
	Distribution risk.Distribution
	Savings      risk.SavingsSummary
	Failed       int // pares que no pudieron evaluarse
}

// network catálogos cargados para una evaluación.
type network struct {
	materials  map[string]*entity.Material
	warehouses map[string]*entity.Warehouse
	all        []risk.MaterialTrigger
}

// RiskUseCase evalúa la severidad de riesgo de toda la red de bodegas.
type RiskUseCase struct {
	stockRepo      repository.StockRepository
	materialRepo   repository.MaterialRepository
	warehouseRepo  repository.WarehouseRepository
	substationRepo repository.SubstationRepository
	forecastRepo   repository.DemandForecastRepository
	classifier     *risk.Classifier
	log            *logger.Logger
	now            func() time.Time
}

// NewRiskUseCase construye el caso de uso. forecastRepo puede ser nil: todo par usa el fallback por stock mínimo.
func NewRiskUseCase(
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	substationRepo repository.SubstationRepository,
	forecastRepo repository.DemandForecastRepository,
	classifier *risk.Classifier,
	log *logger.Logger,
) *RiskUseCase {
	return &RiskUseCase{
		stockRepo:      stockRepo,
		materialRepo:   materialRepo,
		warehouseRepo:  warehouseRepo,
		substationRepo: substationRepo,
		forecastRepo:   forecastRepo,
		classifier:     classifier,
		log:            log,
		now:            time.Now,
	}
}

// Config configuración del clasificador en uso.
func (uc *RiskUseCase) Config() risk.Config { return uc.classifier.Config() }

// EvaluateNetwork carga snapshots y catálogos, evalúa cada par en paralelo y arma el feed de alertas.
func (uc *RiskUseCase) EvaluateNetwork(ctx context.Context, filter NetworkFilter) (*NetworkEvaluation, error) {
	ev, _, err := uc.evaluate(ctx, filter)
	return ev, err
}

func (uc *RiskUseCase) evaluate(ctx context.Context, filter NetworkFilter) (*NetworkEvaluation, *network, error) {
	snapshots, err := uc.stockRepo.List(ctx, repository.StockFilter{
		MaterialIDs:  filter.MaterialIDs,
		WarehouseIDs: filter.WarehouseIDs,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cargar stock: %w", err)
	}
	net, err := uc.loadCatalogs(ctx)
	if err != nil {
		return nil, nil, err
	}
	substations, err := uc.substationRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar subestaciones: %w", err)
	}
	subs := make([]entity.Substation, 0, len(substations))
	for _, s := range substations {
		subs = append(subs, *s)
	}
	forecast := map[repository.DemandKey]float64{}
	if uc.forecastRepo != nil {
		if forecast, err = uc.forecastRepo.DailyDemand(ctx); err != nil {
			return nil, nil, fmt.Errorf("cargar pronóstico: %w", err)
		}
	}

	failed := 0
	inputs := make([]risk.Input, 0, len(snapshots))
	for _, snap := range snapshots {
		if err := snap.Validate(); err != nil {
			failed++
			uc.log.Warn().Err(err).Str("material_id", snap.MaterialID).Str("warehouse_id", snap.WarehouseID).Msg("snapshot inconsistente, se omite")
			continue
		}
		wh, ok := net.warehouses[snap.WarehouseID]
		if !ok {
			failed++
			uc.log.Warn().Str("warehouse_id", snap.WarehouseID).Msg("bodega desconocida, se omite el snapshot")
			continue
		}
		if !wh.IsActive {
			continue
		}
		mat := entity.Material{ID: snap.MaterialID}
		if m, ok := net.materials[snap.MaterialID]; ok {
			mat = *m
		}
		in := risk.NewInput(*snap, mat, *wh, subs)
		in.SuppliedDailyDemand = forecast[repository.DemandKey{MaterialID: snap.MaterialID, WarehouseID: snap.WarehouseID}]
		inputs = append(inputs, in)
	}

	items, err := uc.classifier.EvaluateBatch(ctx, inputs)
	if err != nil {
		return nil, nil, err
	}

	missing := 0
	all := make([]risk.MaterialTrigger, 0, len(items))
	for _, it := range items {
		switch {
		case it.Err == nil:
		case errors.Is(it.Err, domain.ErrMissingDemandSignal):
			missing++
		default:
			failed++
			uc.log.Error().Err(it.Err).Msg("evaluación de par fallida")
			continue
		}
		all = append(all, it.Trigger)
	}
	net.all = all

	now := uc.now()
	ev := &NetworkEvaluation{
		EvaluatedAt:  now,
		Triggers:     filterBySeverity(all, filter.Severities),
		Alerts:       risk.BuildAlertFeed(all, filter.Severities, now),
		Distribution: risk.Distribute(all),
		Savings:      risk.SummarizeSavings(uc.classifier.Config(), all),
		Failed:       failed,
	}

	uc.log.Info().
		Int("pairs", len(all)).
		Int("red", ev.Distribution.Red).
		Int("amber", ev.Distribution.Amber).
		Int("green", ev.Distribution.Green).
		Int("indeterminate", missing).
		Int("failed", failed).
		Msg("red evaluada")
	return ev, net, nil
}

func (uc *RiskUseCase) loadCatalogs(ctx context.Context) (*network, error) {
	materials, err := uc.materialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar materiales: %w", err)
	}
	warehouses, err := uc.warehouseRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("cargar bodegas: %w", err)
	}
	net := &network{
		materials:  make(map[string]*entity.Material, len(materials)),
		warehouses: make(map[string]*entity.Warehouse, len(warehouses)),
	}
	for _, m := range materials {
		net.materials[m.ID] = m
	}
	for _, w := range warehouses {
		net.warehouses[w.ID] = w
	}
	return net, nil
}

func filterBySeverity(triggers []risk.MaterialTrigger, severities []risk.Severity) []risk.MaterialTrigger {
	if len(severities) == 0 {
		return triggers
	}
	keep := make(map[risk.Severity]bool, len(severities))
	for _, s := range severities {
		keep[s] = true
	}
	out := make([]risk.MaterialTrigger, 0, len(triggers))
	for _, t := range triggers {
		if keep[t.Severity] {
			out = append(out, t)
		}
	}
	return out
}
