// riskcheck evalúa la red completa y compara la distribución de severidades con una mezcla objetivo.
//
// Uso:
//
//	riskcheck --data ./snapshot            # CSV (warehouses, substations, materials, stock, demand)
//	riskcheck --data ./snapshot --latin1   # CSV exportados en ISO-8859-1
//	riskcheck                              # PostgreSQL según DB_* / DATABASE_URL
//	riskcheck --target 55,30,15 --tolerance 10 --strict
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/risk"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/csvsource"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("riskcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	dataDir := fs.String("data", "", "directorio con los CSV del snapshot (vacío = PostgreSQL)")
	latin1 := fs.Bool("latin1", false, "los CSV están en ISO-8859-1")
	targetArg := fs.String("target", "55,30,15", "mezcla objetivo GREEN,AMBER,RED en %")
	tolerance := fs.Float64("tolerance", 10, "desvío máximo aceptado en puntos porcentuales")
	strict := fs.Bool("strict", false, "salir con código 1 si algún desvío supera la tolerancia")
	top := fs.Int("top", 10, "alertas a listar")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	target, err := parseTarget(*targetArg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "cargar configuración:", err)
		return 1
	}
	log := logger.NewWithWriter(stderr, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	riskCfg, _ := inventory.EngineConfigs(cfg.Engine)
	classifier := risk.NewClassifier(riskCfg, nil)

	var uc *inventory.RiskUseCase
	if *dataDir != "" {
		ds, err := csvsource.Load(*dataDir, csvsource.Options{Latin1: *latin1})
		if err != nil {
			log.Error().Err(err).Str("dir", *dataDir).Msg("cargar snapshot")
			return 1
		}
		uc = inventory.NewRiskUseCase(ds.Stock(), ds.Materials(), ds.Warehouses(), ds.Substations(), ds.Demand(), classifier, log)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("conexión a PostgreSQL")
			return 1
		}
		defer pool.Close()
		uc = inventory.NewRiskUseCase(
			postgres.NewStockRepository(pool),
			postgres.NewMaterialRepository(pool),
			postgres.NewWarehouseRepository(pool),
			postgres.NewSubstationRepository(pool),
			postgres.NewDemandForecastRepository(pool),
			classifier, log,
		)
	}

	ev, err := uc.EvaluateNetwork(ctx, inventory.NetworkFilter{})
	if err != nil {
		log.Error().Err(err).Msg("evaluar red")
		return 1
	}

	report := checkMix(ev.Distribution, target, *tolerance)
	printReport(stdout, ev, report, *top)
	if *strict && !report.ok() {
		return 1
	}
	return 0
}

func printReport(w io.Writer, ev *inventory.NetworkEvaluation, report mixReport, top int) {
	p := message.NewPrinter(language.Spanish)
	d := ev.Distribution

	p.Fprintf(w, "Pares evaluados: %d (sin demanda: %d, fallidos: %d)\n\n", d.Total(), d.Indeterminate, ev.Failed)
	p.Fprintf(w, "%-8s %8s %9s %9s %9s\n", "", "pares", "real %", "meta %", "desvío")
	for _, row := range report.rows {
		mark := ""
		if !row.ok {
			mark = "  ✗"
		}
		p.Fprintf(w, "%-8s %8d %9.1f %9.1f %+9.1f%s\n", row.severity, row.count, row.actual, row.target, row.deviation, mark)
	}
	p.Fprintf(w, "\nAhorro estimado: $%.2f (urgencias %.2f, sobrestock %.2f)\n",
		ev.Savings.TotalSavings.InexactFloat64(),
		ev.Savings.ExpediteSavings.InexactFloat64(),
		ev.Savings.HoldingSavings.InexactFloat64())

	if top > 0 && len(ev.Alerts) > 0 {
		fmt.Fprintln(w, "\nAlertas:")
		for i, a := range ev.Alerts {
			if i == top {
				p.Fprintf(w, "  ... y %d más\n", len(ev.Alerts)-top)
				break
			}
			p.Fprintf(w, "  %s  %-5s UTR %.2f  %s\n", a.ID, a.Severity, a.UTR, a.Message)
		}
	}
}
