package transfer

import (
	"strings"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Config parámetros de búsqueda de fuentes y asignación de traslados.
type Config struct {
	TargetFillFactor    float64 // faltante = ROP * factor - stock
	MinTransferQuantity float64 // lote mínimo por traslado
	DispatchDays        float64 // alistamiento cuando la fuente no informa lead time

	// Bodegas en estas regiones solo despachan dentro de RestrictedRegionMaxKm.
	RestrictedRegions     []string
	RestrictedRegionMaxKm float64

	CostModel geo.CostModel
}

// DefaultConfig valores por defecto de la red.
func DefaultConfig() Config {
	return Config{
		TargetFillFactor:    1.0,
		MinTransferQuantity: 1,
		DispatchDays:        1,
		RestrictedRegions: []string{
			"Jammu & Kashmir",
			"Ladakh",
			"Arunachal Pradesh",
			"Sikkim",
		},
		RestrictedRegionMaxKm: 300,
		CostModel:             geo.DefaultCostModel,
	}
}

func (c Config) restricted(state string) bool {
	state = strings.TrimSpace(state)
	for _, r := range c.RestrictedRegions {
		if strings.EqualFold(r, state) {
			return true
		}
	}
	return false
}

// SourceLeadTime días base de entrega desde una fuente: su lead time o DispatchDays si no lo tiene.
func (c Config) SourceLeadTime(stock entity.StockSnapshot) float64 {
	if stock.LeadTimeDays > 0 {
		return float64(stock.LeadTimeDays)
	}
	return c.DispatchDays
}
