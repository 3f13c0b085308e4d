package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

func TestParseTarget(t *testing.T) {
	mix, err := parseTarget("55, 30, 15")
	require.NoError(t, err)
	assert.InDelta(t, 55.0, mix[risk.SeverityGreen], 1e-9)
	assert.InDelta(t, 15.0, mix[risk.SeverityRed], 1e-9)

	for _, bad := range []string{"50,50", "60,30,15", "a,b,c", "110,-5,-5"} {
		_, err := parseTarget(bad)
		assert.Error(t, err, bad)
	}
}

func TestCheckMix_ToleranciaYDenominador(t *testing.T) {
	target, err := parseTarget("55,30,15")
	require.NoError(t, err)

	// 11 GREEN, 6 AMBER, 3 RED = 55/30/15; los INDETERMINATE no cuentan
	r := checkMix(risk.Distribution{Green: 11, Amber: 6, Red: 3, Indeterminate: 7}, target, 1)
	assert.True(t, r.ok())

	r = checkMix(risk.Distribution{Green: 2, Amber: 2, Red: 6}, target, 10)
	assert.False(t, r.ok())
	assert.InDelta(t, 45.0, r.rows[2].deviation, 1e-9)
}

func TestRun_DesdeCSV(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"warehouses.csv":  "id,name,lat,lon\nWH-DEL,Delhi,28.6139,77.2090\nWH-JAI,Jaipur,26.9124,75.7873\n",
		"substations.csv": "id,name,capacity,lat,lon\n",
		"materials.csv":   "id,name,lead_time_days\nMAT-1,Conductor ACSR,14\n",
		"stock.csv":       "material_id,warehouse_id,available,min_stock\nMAT-1,WH-DEL,60,70\nMAT-1,WH-JAI,400,70\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	var out, errOut bytes.Buffer
	code := run([]string{"--data", dir, "--target", "50,0,50", "--tolerance", "1", "--strict"}, &out, &errOut)

	assert.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Pares evaluados: 2")
	assert.Contains(t, out.String(), "ALT-")
	assert.Contains(t, out.String(), "Conductor ACSR")

	code = run([]string{"--data", dir, "--strict"}, &out, &errOut)
	assert.Equal(t, 1, code)

	code = run([]string{"--target", "1,2"}, &out, &errOut)
	assert.Equal(t, 2, code)
}
