package inventory

import (
	"math"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
)

// ToTriggersResponse respuesta de GET /api/risk/triggers.
func ToTriggersResponse(ev *NetworkEvaluation) dto.RiskTriggersResponse {
	out := dto.RiskTriggersResponse{
		EvaluatedAt:  ev.EvaluatedAt,
		Distribution: toDistributionDTO(ev.Distribution),
		Savings: dto.SavingsDTO{
			ExpediteSavings:       ev.Savings.ExpediteSavings,
			HoldingSavings:        ev.Savings.HoldingSavings,
			TotalSavings:          ev.Savings.TotalSavings,
			RushOrdersAvoided:     ev.Savings.RushOrdersAvoided,
			OverstockUnitsReduced: ev.Savings.OverstockUnitsReduced,
			OptimalOrders:         ev.Savings.OptimalOrders,
		},
		Triggers: make([]dto.TriggerDTO, 0, len(ev.Triggers)),
	}
	for _, t := range ev.Triggers {
		out.Triggers = append(out.Triggers, toTriggerDTO(t))
	}
	return out
}

func toTriggerDTO(t risk.MaterialTrigger) dto.TriggerDTO {
	d := dto.TriggerDTO{
		MaterialID:        t.MaterialID,
		MaterialName:      t.MaterialName,
		WarehouseID:       t.WarehouseID,
		WarehouseName:     t.WarehouseName,
		Severity:          string(t.Severity),
		Reason:            string(t.Reason),
		Label:             t.Label,
		Action:            t.Action,
		CurrentStock:      t.CurrentStock,
		SafetyStock:       t.SafetyStock,
		ReorderPoint:      t.ReorderPoint,
		MaxStock:          t.MaxStock,
		UTR:               t.UTR,
		OTR:               t.OTR,
		PAR:               t.PAR,
		DailyDemand:       t.DailyDemand,
		DemandMultiplier:  t.DemandMultiplier,
		DemandSource:      t.DemandSource,
		LeadTimeDays:      t.LeadTimeDays,
		UnitPrice:         t.UnitPrice,
		NearbySubstations: make([]dto.NearbySubstationDTO, 0, len(t.NearbySubstations)),
	}
	// JSON no admite +Inf: demanda cero se expone como null.
	if !math.IsInf(t.DaysOfStock, 0) && !math.IsNaN(t.DaysOfStock) {
		v := t.DaysOfStock
		d.DaysOfStock = &v
	}
	if t.Issue != nil {
		d.Issue = t.Issue.Error()
	}
	for _, s := range t.NearbySubstations {
		d.NearbySubstations = append(d.NearbySubstations, dto.NearbySubstationDTO{
			ID: s.ID, Code: s.Code, Name: s.Name, Capacity: s.Capacity, DistanceKm: s.DistanceKm,
		})
	}
	return d
}

func toDistributionDTO(d risk.Distribution) dto.DistributionDTO {
	return dto.DistributionDTO{
		Red:           d.Red,
		Amber:         d.Amber,
		Green:         d.Green,
		Indeterminate: d.Indeterminate,
		Total:         d.Total(),
	}
}

// ToAlertFeedResponse respuesta de GET /api/risk/alerts.
func ToAlertFeedResponse(alerts []risk.Alert) dto.AlertFeedResponse {
	items := make([]dto.AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, dto.AlertDTO{
			ID:            a.ID,
			MaterialID:    a.MaterialID,
			MaterialName:  a.MaterialName,
			WarehouseID:   a.WarehouseID,
			WarehouseName: a.WarehouseName,
			Severity:      string(a.Severity),
			UTR:           a.UTR,
			PAR:           a.PAR,
			Message:       a.Message,
			Action:        a.Action,
			CreatedAt:     a.CreatedAt,
		})
	}
	return dto.AlertFeedResponse{Items: items, Total: len(items)}
}

// ToPlanResponse respuesta de POST /api/transfers/plan.
func ToPlanResponse(p *PlanningResult) dto.PlanTransfersResponse {
	res := p.Result
	out := dto.PlanTransfersResponse{
		GeneratedAt:        p.GeneratedAt,
		Allocations:        make([]dto.AllocationDTO, 0, len(res.Allocations)),
		Fulfilled:          res.Count(transfer.StatusFulfilled),
		Partial:            res.Count(transfer.StatusPartial),
		Unfulfillable:      res.Count(transfer.StatusUnfulfillable),
		TotalTransportCost: res.TotalTransportCost,
		TotalMaterialCost:  res.TotalMaterialCost,
	}
	for _, a := range res.Allocations {
		ad := dto.AllocationDTO{
			MaterialID:    a.Trigger.MaterialID,
			WarehouseID:   a.Trigger.WarehouseID,
			WarehouseName: a.Trigger.WarehouseName,
			Severity:      string(a.Trigger.Severity),
			Requested:     a.Requested,
			Allocated:     a.Allocated,
			Remaining:     a.Remaining,
			Status:        string(a.Status),
			Plans:         make([]dto.TransferPlanDTO, 0, len(a.Plans)),
		}
		if err := a.Err(); err != nil {
			ad.Error = err.Error()
		}
		for _, pl := range a.Plans {
			ad.Plans = append(ad.Plans, dto.TransferPlanDTO{
				MaterialID:             pl.MaterialID,
				SourceWarehouseID:      pl.SourceWarehouseID,
				SourceWarehouseName:    pl.SourceWarehouseName,
				DestinationWarehouseID: pl.DestinationWarehouseID,
				Quantity:               pl.Quantity,
				DistanceKm:             pl.DistanceKm,
				DeliveryDays:           pl.DeliveryDays,
				ETAHours:               pl.ETAHours,
				DeliveryDate:           pl.DeliveryDate(p.GeneratedAt),
				UnitPrice:              pl.UnitPrice,
				MaterialCost:           pl.MaterialCost,
				TransportCost:          pl.TransportCost,
				TotalCost:              pl.TotalCost,
				Severity:               string(pl.Severity),
				Partial:                pl.Partial,
			})
		}
		out.Allocations = append(out.Allocations, ad)
	}
	return out
}

// ToTransferResponse traslado persistido a DTO.
func ToTransferResponse(t *entity.MaterialTransfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:                     t.ID,
		Code:                   t.Code,
		MaterialID:             t.MaterialID,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Quantity:               t.Quantity,
		UnitCost:               t.UnitCost,
		MaterialCost:           t.MaterialCost,
		TransportCost:          t.TransportCost,
		TotalCost:              t.TotalCost,
		DistanceKm:             t.DistanceKm,
		ETAHours:               t.ETAHours,
		Severity:               t.Severity,
		Partial:                t.Partial,
		Status:                 t.Status,
		Reason:                 t.Reason,
		ExpectedDelivery:       t.ExpectedDelivery,
		DispatchedAt:           t.DispatchedAt,
		DeliveredAt:            t.DeliveredAt,
		CreatedAt:              t.CreatedAt,
	}
}
