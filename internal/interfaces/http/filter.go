package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

// parseFilter lee material_id, warehouse_id y severity (listas separadas por coma).
func parseFilter(c *fiber.Ctx) (inventory.NetworkFilter, error) {
	f := inventory.NetworkFilter{
		MaterialIDs:  splitList(c.Query("material_id")),
		WarehouseIDs: splitList(c.Query("warehouse_id")),
	}
	for _, s := range splitList(c.Query("severity")) {
		sev, ok := risk.ParseSeverity(s)
		if !ok {
			return f, fiber.NewError(fiber.StatusBadRequest, "severity inválida: "+s)
		}
		f.Severities = append(f.Severities, sev)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryPage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	return page
}
