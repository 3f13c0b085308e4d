package inventory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
)

// ReplenishmentUseCase genera la lista de compra para lo que la red no alcanza a cubrir con traslados.
type ReplenishmentUseCase struct {
	planning *TransferPlanningUseCase
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(planning *TransferPlanningUseCase) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{planning: planning}
}

// GeneratePurchaseList planifica traslados y devuelve el remanente PARTIAL/UNFULFILLABLE como sugerencias
// de compra, ordenadas por severidad, días de cobertura y costo estimado.
func (uc *ReplenishmentUseCase) GeneratePurchaseList(ctx context.Context, filter NetworkFilter) (*dto.PurchaseListResponse, error) {
	plan, err := uc.planning.PlanTransfers(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := BuildPurchaseList(plan.Result, plan.GeneratedAt)

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.EstimatedCost)
	}
	return &dto.PurchaseListResponse{Items: items, TotalCost: total}, nil
}

// BuildPurchaseList convierte el faltante no cubierto de cada asignación en una sugerencia de compra.
// La cantidad se redondea hacia arriba a unidades enteras.
func BuildPurchaseList(res transfer.Result, asOf time.Time) []dto.PurchaseSuggestionDTO {
	type ranked struct {
		item        dto.PurchaseSuggestionDTO
		priority    int
		daysOfStock float64
	}

	rows := make([]ranked, 0)
	for _, a := range res.Allocations {
		if a.Status == transfer.StatusFulfilled || a.Remaining <= 0 {
			continue
		}
		t := a.Trigger
		qty := decimal.NewFromFloat(math.Ceil(a.Remaining - 1e-9))
		if !qty.IsPositive() {
			continue
		}
		price := decimal.NewFromFloat(t.UnitPrice).Round(2)
		rows = append(rows, ranked{
			item: dto.PurchaseSuggestionDTO{
				MaterialID:      t.MaterialID,
				MaterialName:    t.MaterialName,
				WarehouseID:     t.WarehouseID,
				WarehouseName:   t.WarehouseName,
				Severity:        string(t.Severity),
				Quantity:        qty,
				UnitPrice:       price,
				EstimatedCost:   qty.Mul(price).Round(2),
				LeadTimeDays:    t.LeadTimeDays,
				ExpectedArrival: asOf.AddDate(0, 0, t.LeadTimeDays),
				Expedite:        t.DaysOfStock < float64(t.LeadTimeDays),
			},
			priority:    t.Severity.Priority(),
			daysOfStock: t.DaysOfStock,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].priority != rows[j].priority {
			return rows[i].priority < rows[j].priority
		}
		if rows[i].daysOfStock != rows[j].daysOfStock {
			return rows[i].daysOfStock < rows[j].daysOfStock
		}
		return rows[i].item.EstimatedCost.GreaterThan(rows[j].item.EstimatedCost)
	})

	out := make([]dto.PurchaseSuggestionDTO, len(rows))
	for i, r := range rows {
		r.item.Priority = i + 1
		out[i] = r.item
	}
	return out
}
