package inventory

import (
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/internal/domain/transfer"
	"github.com/jhoicas/nexus-inventory/pkg/config"
)

// EngineConfigs aplica sobre los valores por defecto lo configurado en ENGINE_*.
func EngineConfigs(e config.EngineConfig) (risk.Config, transfer.Config) {
	rc := risk.DefaultConfig()
	tc := transfer.DefaultConfig()

	setFloat(&rc.ServiceLevelZ, e.ServiceLevelZ)
	setFloat(&rc.DemandVariability, e.DemandVariability)
	setFloat(&rc.MaxStockMultiplier, e.MaxStockMultiplier)
	setFloat(&rc.NearbyRadiusKm, e.NearbyRadiusKm)
	setFloat(&rc.DefaultUnitPrice, e.DefaultUnitPrice)
	if e.DefaultLeadTimeDays > 0 {
		rc.DefaultLeadTimeDays = e.DefaultLeadTimeDays
	}
	if e.Workers > 0 {
		rc.Workers = e.Workers
	}

	setFloat(&tc.TargetFillFactor, e.TargetFillFactor)
	setFloat(&tc.MinTransferQuantity, e.MinTransferQuantity)
	if len(e.RestrictedRegions) > 0 {
		tc.RestrictedRegions = append([]string(nil), e.RestrictedRegions...)
	}
	return rc, tc
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
