package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	costing "github.com/jhoicas/nexus-inventory/internal/domain/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// TransferLifecycleUseCase materializa planes aceptados y los mueve por sus estados
// PLANNED → IN_TRANSIT → DELIVERED (o CANCELLED), con bloqueo de fila (SELECT FOR UPDATE).
type TransferLifecycleUseCase struct {
	txRunner         TxRunner
	warehouseRepo    repository.WarehouseRepository
	materialRepo     repository.MaterialRepository
	transferRepo     repository.TransferRepository
	cfg              transfer.Config
	defaultUnitPrice decimal.Decimal
	log              *logger.Logger
}

// NewTransferLifecycleUseCase construye el caso de uso.
func NewTransferLifecycleUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	materialRepo repository.MaterialRepository,
	transferRepo repository.TransferRepository,
	cfg transfer.Config,
	defaultUnitPrice float64,
	log *logger.Logger,
) *TransferLifecycleUseCase {
	return &TransferLifecycleUseCase{
		txRunner:         txRunner,
		warehouseRepo:    warehouseRepo,
		materialRepo:     materialRepo,
		transferRepo:     transferRepo,
		cfg:              cfg,
		defaultUnitPrice: decimal.NewFromFloat(defaultUnitPrice),
		log:              log,
	}
}

// Apply reserva el stock de la bodega origen y registra el traslado en PLANNED, todo en una transacción.
// Del plan solo se toman material, bodegas, cantidad y severidad: costos y tiempos se recalculan.
func (uc *TransferLifecycleUseCase) Apply(ctx context.Context, plan transfer.Plan) (*entity.MaterialTransfer, error) {
	if plan.MaterialID == "" || plan.SourceWarehouseID == "" || plan.DestinationWarehouseID == "" {
		return nil, fmt.Errorf("%w: material y bodegas son obligatorios", domain.ErrInvalidInput)
	}
	if plan.SourceWarehouseID == plan.DestinationWarehouseID {
		return nil, fmt.Errorf("%w: origen y destino iguales", domain.ErrInvalidInput)
	}
	if !(plan.Quantity > 0) || math.IsInf(plan.Quantity, 0) {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}

	src, err := uc.warehouseRepo.GetByID(ctx, plan.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	dst, err := uc.warehouseRepo.GetByID(ctx, plan.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}
	if src == nil || dst == nil {
		return nil, fmt.Errorf("%w: bodega", domain.ErrNotFound)
	}
	if !src.IsActive {
		return nil, fmt.Errorf("%w: bodega origen %s inactiva", domain.ErrConflict, src.ID)
	}
	mat, err := uc.materialRepo.GetByID(ctx, plan.MaterialID)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, plan.MaterialID)
	}
	distance, err := geo.Between(src.Location, dst.Location)
	if err != nil {
		return nil, fmt.Errorf("traslado %s → %s: %w", src.ID, dst.ID, err)
	}

	unitCost := mat.UnitPrice
	if !unitCost.IsPositive() {
		unitCost = uc.defaultUnitPrice
	}
	qty := decimal.NewFromFloat(plan.Quantity)
	materialCost := qty.Mul(unitCost).Round(2)
	transportCost := decimal.NewFromFloat(uc.cfg.CostModel.TransportCost(distance, plan.Quantity)).Round(2)

	now := time.Now()
	t := &entity.MaterialTransfer{
		ID:                     uuid.New().String(),
		Code:                   transferCode(now),
		MaterialID:             mat.ID,
		SourceWarehouseID:      src.ID,
		DestinationWarehouseID: dst.ID,
		Quantity:               plan.Quantity,
		UnitCost:               unitCost,
		MaterialCost:           materialCost,
		TransportCost:          transportCost,
		TotalCost:              materialCost.Add(transportCost),
		DistanceKm:             distance,
		ETAHours:               geo.EstimateETAHours(distance),
		Severity:               string(plan.Severity),
		Partial:                plan.Partial,
		Status:                 entity.TransferStatusPlanned,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
		transferRepo repository.TransferRepository,
		_ repository.MaterialRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(ctx, t.MaterialID, t.SourceWarehouseID)
		if err != nil {
			return err
		}
		if stock.Transferable() < t.Quantity {
			return fmt.Errorf("%w: %s tiene %.2f u transferibles", domain.ErrInsufficientStock, t.SourceWarehouseID, stock.Transferable())
		}
		t.DeliveryDays = geo.EstimateDeliveryDays(distance, uc.cfg.SourceLeadTime(*stock))
		t.ExpectedDelivery = transfer.Plan{DeliveryDays: t.DeliveryDays}.DeliveryDate(now)
		stock.QuantityReserved += t.Quantity
		stock.UpdatedAt = now
		if err := stockRepo.UpdateQuantities(ctx, stock); err != nil {
			return err
		}
		return transferRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transfer", t.Code).Str("material_id", t.MaterialID).
		Str("from", t.SourceWarehouseID).Str("to", t.DestinationWarehouseID).
		Float64("quantity", t.Quantity).Msg("traslado planeado")
	return t, nil
}

// Dispatch descuenta el stock del origen y lo deja en tránsito hacia el destino.
func (uc *TransferLifecycleUseCase) Dispatch(ctx context.Context, id string) (*entity.MaterialTransfer, error) {
	return uc.transition(ctx, id, entity.TransferStatusInTransit, "", func(
		t *entity.MaterialTransfer, stocks lockedStocks, movRepo repository.InventoryMovementRepository,
		_ repository.MaterialRepository, now time.Time,
	) error {
		if t.Status != entity.TransferStatusPlanned {
			return fmt.Errorf("%w: traslado %s en estado %s", domain.ErrConflict, t.Code, t.Status)
		}
		src, dst := stocks.source, stocks.destination
		if src.QuantityAvailable < t.Quantity {
			return fmt.Errorf("%w: origen %s", domain.ErrInsufficientStock, t.SourceWarehouseID)
		}
		src.QuantityAvailable -= t.Quantity
		src.QuantityReserved = math.Max(0, src.QuantityReserved-t.Quantity)
		dst.QuantityInTransit += t.Quantity

		t.DispatchedAt = &now
		t.ExpectedDelivery = now.Add(time.Duration(t.ETAHours * float64(time.Hour)))
		return movRepo.Create(ctx, &entity.InventoryMovement{
			TransactionID: t.ID,
			MaterialID:    t.MaterialID,
			WarehouseID:   t.SourceWarehouseID,
			Type:          entity.MovementTypeTransferOut,
			Quantity:      -t.Quantity,
			UnitCost:      t.UnitCost,
			TotalCost:     t.MaterialCost,
			Date:          now,
			CreatedAt:     now,
		})
	})
}

// Complete acredita el traslado en destino al costo puesto en bodega y actualiza el costo promedio del material.
func (uc *TransferLifecycleUseCase) Complete(ctx context.Context, id string) (*entity.MaterialTransfer, error) {
	return uc.transition(ctx, id, entity.TransferStatusDelivered, "", func(
		t *entity.MaterialTransfer, stocks lockedStocks, movRepo repository.InventoryMovementRepository,
		materialRepo repository.MaterialRepository, now time.Time,
	) error {
		if t.Status != entity.TransferStatusInTransit {
			return fmt.Errorf("%w: traslado %s en estado %s", domain.ErrConflict, t.Code, t.Status)
		}
		dst := stocks.destination
		before := decimal.NewFromFloat(dst.QuantityAvailable)
		dst.QuantityInTransit = math.Max(0, dst.QuantityInTransit-t.Quantity)
		dst.QuantityAvailable += t.Quantity
		t.DeliveredAt = &now

		qty := decimal.NewFromFloat(t.Quantity)
		landed := costing.LandedUnitCost(t.UnitCost, t.TransportCost, qty).Round(2)
		if mat, err := materialRepo.GetByID(ctx, t.MaterialID); err != nil {
			return err
		} else if mat != nil {
			price := costing.WeightedAverageCost(before, mat.UnitPrice, qty, landed).Round(2)
			if err := materialRepo.UpdateUnitPrice(ctx, mat.ID, price); err != nil {
				return err
			}
		}
		return movRepo.Create(ctx, &entity.InventoryMovement{
			TransactionID: t.ID,
			MaterialID:    t.MaterialID,
			WarehouseID:   t.DestinationWarehouseID,
			Type:          entity.MovementTypeTransferIn,
			Quantity:      t.Quantity,
			UnitCost:      landed,
			TotalCost:     landed.Mul(qty).Round(2),
			Date:          now,
			CreatedAt:     now,
		})
	})
}

// Cancel libera la reserva (PLANNED) o devuelve la mercancía al origen (IN_TRANSIT).
func (uc *TransferLifecycleUseCase) Cancel(ctx context.Context, id, reason string) (*entity.MaterialTransfer, error) {
	return uc.transition(ctx, id, entity.TransferStatusCancelled, reason, func(
		t *entity.MaterialTransfer, stocks lockedStocks, movRepo repository.InventoryMovementRepository,
		_ repository.MaterialRepository, now time.Time,
	) error {
		src, dst := stocks.source, stocks.destination
		switch t.Status {
		case entity.TransferStatusPlanned:
			src.QuantityReserved = math.Max(0, src.QuantityReserved-t.Quantity)
			return nil
		case entity.TransferStatusInTransit:
			dst.QuantityInTransit = math.Max(0, dst.QuantityInTransit-t.Quantity)
			src.QuantityAvailable += t.Quantity
			return movRepo.Create(ctx, &entity.InventoryMovement{
				TransactionID: t.ID,
				MaterialID:    t.MaterialID,
				WarehouseID:   t.SourceWarehouseID,
				Type:          entity.MovementTypeTransferIn,
				Quantity:      t.Quantity,
				UnitCost:      t.UnitCost,
				TotalCost:     t.MaterialCost,
				Date:          now,
				CreatedAt:     now,
			})
		}
		return fmt.Errorf("%w: traslado %s en estado %s", domain.ErrConflict, t.Code, t.Status)
	})
}

// List traslados por estado (vacío = todos).
func (uc *TransferLifecycleUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.MaterialTransfer, error) {
	return uc.transferRepo.List(ctx, strings.ToUpper(status), limit, offset)
}

type lockedStocks struct {
	source      *entity.StockSnapshot
	destination *entity.StockSnapshot
}

type transitionFunc func(
	t *entity.MaterialTransfer,
	stocks lockedStocks,
	movRepo repository.InventoryMovementRepository,
	materialRepo repository.MaterialRepository,
	now time.Time,
) error

// transition bloquea el traslado y el stock de ambas bodegas (siempre en orden de id
// de bodega), aplica fn y persiste todo en la misma transacción.
func (uc *TransferLifecycleUseCase) transition(ctx context.Context, id, next, reason string, fn transitionFunc) (*entity.MaterialTransfer, error) {
	var out *entity.MaterialTransfer
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		transferRepo repository.TransferRepository,
		materialRepo repository.MaterialRepository,
	) error {
		t, err := transferRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}

		first, second := t.SourceWarehouseID, t.DestinationWarehouseID
		if second < first {
			first, second = second, first
		}
		a, err := stockRepo.GetForUpdate(ctx, t.MaterialID, first)
		if err != nil {
			return err
		}
		b, err := stockRepo.GetForUpdate(ctx, t.MaterialID, second)
		if err != nil {
			return err
		}
		stocks := lockedStocks{source: a, destination: b}
		if a.WarehouseID != t.SourceWarehouseID {
			stocks = lockedStocks{source: b, destination: a}
		}

		now := time.Now()
		if err := fn(t, stocks, movRepo, materialRepo, now); err != nil {
			return err
		}
		for _, s := range []*entity.StockSnapshot{stocks.source, stocks.destination} {
			s.UpdatedAt = now
			if err := stockRepo.UpdateQuantities(ctx, s); err != nil {
				return err
			}
		}
		t.Status = next
		if reason != "" {
			t.Reason = reason
		}
		t.UpdatedAt = now
		if err := transferRepo.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transfer", out.Code).Str("status", out.Status).Msg("traslado actualizado")
	return out, nil
}

func transferCode(now time.Time) string {
	return fmt.Sprintf("TRF-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}
