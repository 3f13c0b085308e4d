package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
)

// TransferHandler planeación y ciclo de vida de traslados entre bodegas.
type TransferHandler struct {
	planning  *inventory.TransferPlanningUseCase
	lifecycle *inventory.TransferLifecycleUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(planning *inventory.TransferPlanningUseCase, lifecycle *inventory.TransferLifecycleUseCase) *TransferHandler {
	return &TransferHandler{planning: planning, lifecycle: lifecycle}
}

// Plan godoc
// @Summary      Proponer traslados
// @Description  Busca fuentes cercanas para los faltantes RED/AMBER y asigna sin exceder el stock transferible de cada bodega.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanTransfersRequest  false  "material_ids, warehouse_ids (vacío = toda la red)"
// @Success      200   {object}  dto.PlanTransfersResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/transfers/plan [post]
func (h *TransferHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanTransfersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	res, err := h.planning.PlanTransfers(c.UserContext(), inventory.NetworkFilter{
		MaterialIDs:  in.MaterialIDs,
		WarehouseIDs: in.WarehouseIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToPlanResponse(res))
}

// Apply godoc
// @Summary      Aplicar un traslado planeado
// @Description  Reserva el stock de la bodega origen y registra el traslado en estado PLANNED.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyTransferRequest  true  "material_id, source_warehouse_id, destination_warehouse_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	plan := transfer.Plan{
		MaterialID:             strings.TrimSpace(in.MaterialID),
		SourceWarehouseID:      strings.TrimSpace(in.SourceWarehouseID),
		DestinationWarehouseID: strings.TrimSpace(in.DestinationWarehouseID),
		Quantity:               in.Quantity,
	}
	if in.Severity != "" {
		sev, ok := risk.ParseSeverity(in.Severity)
		if !ok {
			return badRequest(c, "VALIDATION", "severity inválida")
		}
		plan.Severity = sev
	}
	t, err := h.lifecycle.Apply(c.UserContext(), plan)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToTransferResponse(t))
}

// Dispatch godoc
// @Summary      Despachar traslado
// @Tags         transfers
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	t, err := h.lifecycle.Dispatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToTransferResponse(t))
}

// Complete godoc
// @Summary      Recibir traslado en destino
// @Tags         transfers
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	t, err := h.lifecycle.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToTransferResponse(t))
}

// Cancel godoc
// @Summary      Cancelar traslado
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true   "ID del traslado"
// @Param        body  body  dto.CancelTransferRequest  false  "motivo"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelTransferRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	t, err := h.lifecycle.Cancel(c.UserContext(), c.Params("id"), strings.TrimSpace(in.Reason))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Produce      json
// @Param        status  query  string  false  "PLANNED, IN_TRANSIT, DELIVERED, CANCELLED"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	page := queryPage(c)
	list, err := h.lifecycle.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, inventory.ToTransferResponse(t))
	}
	return c.JSON(dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
