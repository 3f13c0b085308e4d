package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// PlanningResult propuesta de traslados para la red.
type PlanningResult struct {
	GeneratedAt time.Time
	Evaluation  *NetworkEvaluation
	Result      transfer.Result
}

// TransferPlanningUseCase busca fuentes para los faltantes RED/AMBER y optimiza la asignación.
type TransferPlanningUseCase struct {
	risk      *RiskUseCase
	stockRepo repository.StockRepository
	cfg       transfer.Config
	log       *logger.Logger
}

// NewTransferPlanningUseCase construye el caso de uso.
func NewTransferPlanningUseCase(riskUC *RiskUseCase, stockRepo repository.StockRepository, cfg transfer.Config, log *logger.Logger) *TransferPlanningUseCase {
	return &TransferPlanningUseCase{risk: riskUC, stockRepo: stockRepo, cfg: cfg, log: log}
}

// Config configuración de traslados en uso.
func (uc *TransferPlanningUseCase) Config() transfer.Config { return uc.cfg }

// PlanTransfers evalúa la red (según filter) y propone traslados. Las fuentes se buscan en
// toda la red aunque el filtro restrinja las bodegas destino; una fuente con faltante propio
// del material nunca despacha, esté o no dentro del filtro.
func (uc *TransferPlanningUseCase) PlanTransfers(ctx context.Context, filter NetworkFilter) (*PlanningResult, error) {
	filter.Severities = nil
	ev, net, err := uc.risk.evaluate(ctx, filter)
	if err != nil {
		return nil, err
	}

	needed := map[string]bool{}
	for _, t := range net.all {
		if t.Severity.NeedsReplenishment() {
			needed[t.MaterialID] = true
		}
	}
	if len(needed) == 0 {
		return &PlanningResult{GeneratedAt: ev.EvaluatedAt, Evaluation: ev, Result: transfer.OptimizeTransfers(uc.cfg, nil, nil)}, nil
	}

	ids := make([]string, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	stock, err := uc.stockRepo.List(ctx, repository.StockFilter{MaterialIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("cargar fuentes: %w", err)
	}
	sources := make(map[string][]transfer.Source, len(needed))
	for _, s := range stock {
		wh, ok := net.warehouses[s.WarehouseID]
		if !ok {
			continue
		}
		sources[s.MaterialID] = append(sources[s.MaterialID], transfer.Source{Warehouse: *wh, Stock: *s})
	}

	needy, err := uc.needySources(ctx, filter, net, ids)
	if err != nil {
		return nil, err
	}

	candidates := make(map[transfer.Key][]transfer.Candidate)
	for _, t := range net.all {
		if !t.Severity.NeedsReplenishment() {
			continue
		}
		dest, ok := net.warehouses[t.WarehouseID]
		if !ok {
			continue
		}
		mat := entity.Material{ID: t.MaterialID}
		if m, ok := net.materials[t.MaterialID]; ok {
			mat = *m
		}
		ranking, err := transfer.FindCandidates(uc.cfg, mat, *dest, uc.cfg.MinTransferQuantity, sources[t.MaterialID])
		if err != nil {
			uc.log.Warn().Err(err).Str("material_id", t.MaterialID).Str("warehouse_id", t.WarehouseID).Msg("destino sin ubicación válida")
			continue
		}
		kept := ranking.Candidates[:0]
		for _, c := range ranking.Candidates {
			if !needy[transfer.Key{MaterialID: t.MaterialID, WarehouseID: c.WarehouseID}] {
				kept = append(kept, c)
			}
		}
		candidates[transfer.KeyOf(t)] = kept
	}

	res := transfer.OptimizeTransfers(uc.cfg, net.all, candidates)
	uc.log.Info().
		Int("allocations", len(res.Allocations)).
		Int("fulfilled", res.Count(transfer.StatusFulfilled)).
		Int("partial", res.Count(transfer.StatusPartial)).
		Int("unfulfillable", res.Count(transfer.StatusUnfulfillable)).
		Str("transport_cost", res.TotalTransportCost.StringFixed(2)).
		Msg("traslados planeados")

	return &PlanningResult{GeneratedAt: ev.EvaluatedAt, Evaluation: ev, Result: res}, nil
}

// needySources pares material/bodega con faltante propio en toda la red. Con filtro de bodegas
// la evaluación recibida no cubre las fuentes, así que se reclasifican los materiales pedidos
// sin restringir bodegas.
func (uc *TransferPlanningUseCase) needySources(ctx context.Context, filter NetworkFilter, net *network, materialIDs []string) (map[transfer.Key]bool, error) {
	all := net.all
	if len(filter.WarehouseIDs) > 0 {
		_, full, err := uc.risk.evaluate(ctx, NetworkFilter{MaterialIDs: materialIDs})
		if err != nil {
			return nil, fmt.Errorf("clasificar fuentes: %w", err)
		}
		all = full.all
	}
	needy := make(map[transfer.Key]bool)
	for _, t := range all {
		if t.Severity.NeedsReplenishment() && t.Shortfall(uc.cfg.TargetFillFactor) > 0 {
			needy[transfer.KeyOf(t)] = true
		}
	}
	return needy, nil
}
