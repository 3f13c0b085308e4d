package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
)

// targetMix porcentajes objetivo por severidad.
type targetMix map[risk.Severity]float64

// parseTarget lee "GREEN,AMBER,RED" en porcentaje; deben sumar 100.
func parseTarget(s string) (targetMix, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("target: se esperan 3 valores GREEN,AMBER,RED, llegó %q", s)
	}
	order := []risk.Severity{risk.SeverityGreen, risk.SeverityAmber, risk.SeverityRed}
	mix := targetMix{}
	sum := 0.0
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("target: valor inválido %q", p)
		}
		mix[order[i]] = v
		sum += v
	}
	if math.Abs(sum-100) > 0.01 {
		return nil, fmt.Errorf("target: los porcentajes suman %.2f, no 100", sum)
	}
	return mix, nil
}

type mixRow struct {
	severity  risk.Severity
	count     int
	actual    float64
	target    float64
	deviation float64
	ok        bool
}

type mixReport struct {
	rows []mixRow
}

func (r mixReport) ok() bool {
	for _, row := range r.rows {
		if !row.ok {
			return false
		}
	}
	return true
}

// checkMix compara la distribución con la meta. Los pares sin demanda no cuentan en el denominador.
func checkMix(d risk.Distribution, target targetMix, tolerance float64) mixReport {
	classified := d.Red + d.Amber + d.Green
	counts := map[risk.Severity]int{
		risk.SeverityGreen: d.Green,
		risk.SeverityAmber: d.Amber,
		risk.SeverityRed:   d.Red,
	}
	var r mixReport
	for _, s := range []risk.Severity{risk.SeverityGreen, risk.SeverityAmber, risk.SeverityRed} {
		actual := 0.0
		if classified > 0 {
			actual = float64(counts[s]) / float64(classified) * 100
		}
		dev := actual - target[s]
		r.rows = append(r.rows, mixRow{
			severity:  s,
			count:     counts[s],
			actual:    actual,
			target:    target[s],
			deviation: dev,
			ok:        math.Abs(dev) <= tolerance,
		})
	}
	return r
}
