package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
)

// WarehouseHandler consulta de la red de bodegas.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Produce      json
// @Param        active  query  bool  false  "Solo activas"
// @Param        limit   query  int   false  "Límite"   default(20)
// @Param        offset  query  int   false  "Offset"   default(0)
// @Success      200     {object}  dto.WarehouseListResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page := queryPage(c)
	out, err := h.uc.List(c.UserContext(), c.QueryBool("active", false), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sources godoc
// @Summary      Fuentes de despacho hacia una bodega
// @Description  Ranking de bodegas que pueden despachar la cantidad pedida: distancia, días de entrega y disponibilidad.
// @Tags         warehouses
// @Produce      json
// @Param        id           path   string  true   "ID de la bodega destino"
// @Param        material_id  query  string  true   "ID del material"
// @Param        quantity     query  number  false  "Cantidad requerida (default: lote mínimo)"
// @Success      200  {object}  dto.SourcesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/sources [get]
func (h *WarehouseHandler) Sources(c *fiber.Ctx) error {
	out, err := h.uc.Sources(c.UserContext(), c.Params("id"), c.Query("material_id"), c.QueryFloat("quantity", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
