package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
)

// ReplenishmentHandler lista de compra para el faltante que la red no cubre.
type ReplenishmentHandler struct {
	uc *inventory.ReplenishmentUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// PurchaseList godoc
// @Summary      Lista de compra
// @Description  Planifica traslados y devuelve como compra el remanente de las asignaciones PARTIAL/UNFULFILLABLE,
//
//	ordenado por severidad, días de cobertura y costo.
//
// @Tags         replenishment
// @Produce      json
// @Param        material_id   query  string  false  "IDs de material separados por coma"
// @Param        warehouse_id  query  string  false  "IDs de bodega separados por coma"
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/replenishment/purchase-list [get]
func (h *ReplenishmentHandler) PurchaseList(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", err.Error())
	}
	list, err := h.uc.GeneratePurchaseList(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
