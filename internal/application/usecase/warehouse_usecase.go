package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// WarehouseUseCase consulta de la red de bodegas: ubicación, subestaciones cercanas
// y fuentes de despacho para un material.
type WarehouseUseCase struct {
	warehouseRepo  repository.WarehouseRepository
	substationRepo repository.SubstationRepository
	stockRepo      repository.StockRepository
	radiusKm       float64
	transferCfg    transfer.Config
}

// NewWarehouseUseCase construye el caso de uso. radiusKm es el radio de influencia de subestaciones.
func NewWarehouseUseCase(
	warehouseRepo repository.WarehouseRepository,
	substationRepo repository.SubstationRepository,
	stockRepo repository.StockRepository,
	radiusKm float64,
	transferCfg transfer.Config,
) *WarehouseUseCase {
	return &WarehouseUseCase{
		warehouseRepo:  warehouseRepo,
		substationRepo: substationRepo,
		stockRepo:      stockRepo,
		radiusKm:       radiusKm,
		transferCfg:    transferCfg,
	}
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	subs, err := uc.substationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := uc.toWarehouseResponse(w, subs)
	return &out, nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, activeOnly bool, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.warehouseRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	subs, err := uc.substationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	total := len(list)
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, uc.toWarehouseResponse(w, subs))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Sources ranking de bodegas que pueden despachar quantity del material a la bodega destino.
func (uc *WarehouseUseCase) Sources(ctx context.Context, destinationID, materialID string, quantity float64) (*dto.SourcesResponse, error) {
	if materialID == "" {
		return nil, fmt.Errorf("%w: material_id requerido", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		quantity = uc.transferCfg.MinTransferQuantity
	}
	dest, err := uc.warehouseRepo.GetByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, destinationID)
	}
	warehouses, err := uc.warehouseRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Warehouse, len(warehouses))
	for _, w := range warehouses {
		byID[w.ID] = w
	}
	stock, err := uc.stockRepo.List(ctx, repository.StockFilter{MaterialIDs: []string{materialID}})
	if err != nil {
		return nil, err
	}
	sources := make([]transfer.Source, 0, len(stock))
	for _, s := range stock {
		if w, ok := byID[s.WarehouseID]; ok {
			sources = append(sources, transfer.Source{Warehouse: *w, Stock: *s})
		}
	}

	ranking, err := transfer.FindCandidates(uc.transferCfg, entity.Material{ID: materialID}, *dest, quantity, sources)
	if err != nil {
		return nil, err
	}
	out := &dto.SourcesResponse{
		MaterialID:  materialID,
		Destination: toWarehouseRef(dest),
		Quantity:    quantity,
		Candidates:  make([]dto.SourceCandidateDTO, 0, len(ranking.Candidates)),
		Skipped:     make([]dto.SkippedSourceDTO, 0, len(ranking.Skipped)),
	}
	for _, c := range ranking.Candidates {
		ref := dto.WarehouseRef{ID: c.WarehouseID, Code: c.WarehouseCode, Name: c.WarehouseName, State: c.State}
		if w, ok := byID[c.WarehouseID]; ok {
			ref.Location = w.Location
		}
		out.Candidates = append(out.Candidates, dto.SourceCandidateDTO{
			WarehouseRef: ref,
			Transferable: c.Transferable,
			LeadTimeDays: c.LeadTimeDays,
			DistanceKm:   c.DistanceKm,
			DeliveryDays: c.DeliveryDays,
			ETAHours:     c.ETAHours,
		})
	}
	for _, s := range ranking.Skipped {
		out.Skipped = append(out.Skipped, dto.SkippedSourceDTO{WarehouseID: s.WarehouseID, Reason: string(s.Reason)})
	}
	return out, nil
}

func (uc *WarehouseUseCase) toWarehouseResponse(w *entity.Warehouse, subs []*entity.Substation) dto.WarehouseResponse {
	out := dto.WarehouseResponse{
		WarehouseRef:      toWarehouseRef(w),
		Region:            w.Region,
		IsActive:          w.IsActive,
		NearbySubstations: []dto.NearbySubstationDTO{},
	}
	for _, s := range subs {
		d, err := geo.Between(w.Location, s.Location)
		if err != nil || d > uc.radiusKm {
			continue
		}
		out.NearbySubstations = append(out.NearbySubstations, dto.NearbySubstationDTO{
			ID: s.ID, Code: s.Code, Name: s.Name, Capacity: s.Capacity, DistanceKm: d,
		})
	}
	sort.SliceStable(out.NearbySubstations, func(i, j int) bool {
		return out.NearbySubstations[i].DistanceKm < out.NearbySubstations[j].DistanceKm
	})
	return out
}

func toWarehouseRef(w *entity.Warehouse) dto.WarehouseRef {
	return dto.WarehouseRef{ID: w.ID, Code: w.Code, Name: w.Name, State: w.State, Location: w.Location}
}
