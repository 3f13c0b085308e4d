package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "nexus-inventory", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Zero(t, cfg.Engine.ServiceLevelZ)
	assert.Empty(t, cfg.Engine.RestrictedRegions)
}

func TestLoad_LeeVariablesDelMotor(t *testing.T) {
	t.Setenv("ENGINE_SERVICE_LEVEL_Z", "2.33")
	t.Setenv("ENGINE_WORKERS", " 8 ")
	t.Setenv("ENGINE_MIN_TRANSFER_QTY", "5")
	t.Setenv("ENGINE_RESTRICTED_REGIONS", "Jammu & Kashmir; Ladakh ;;Sikkim")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.InDelta(t, 2.33, cfg.Engine.ServiceLevelZ, 1e-9)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.InDelta(t, 5.0, cfg.Engine.MinTransferQuantity, 1e-9)
	assert.Equal(t, []string{"Jammu & Kashmir", "Ladakh", "Sikkim"}, cfg.Engine.RestrictedRegions)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RechazaParametrosNegativos(t *testing.T) {
	t.Setenv("ENGINE_NEARBY_RADIUS_KM", "-10")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "nexus", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/nexus?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", db.ConnectionString())
}
