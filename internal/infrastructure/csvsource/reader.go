// Package csvsource carga un snapshot de la red desde archivos CSV y lo expone
// con los mismos puertos de repositorio que PostgreSQL (corridas offline y cmd/riskcheck).
//
// Archivos esperados en el directorio (encabezado obligatorio, columnas en cualquier orden):
//
//	warehouses.csv   id,code,name,state,region,lat,lon,active
//	substations.csv  id,code,name,capacity,lat,lon,primary_warehouse_id
//	materials.csv    id,code,name,category,unit,lead_time_days,unit_price
//	stock.csv        material_id,warehouse_id,available,reserved,in_transit,reorder_point,min_stock,max_stock,lead_time_days,unit_price
//	demand.csv       material_id,warehouse_id,daily_demand   (opcional)
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/nexus-inventory/internal/domain"
)

// Options lectura de los archivos.
type Options struct {
	Latin1    bool // archivos exportados en ISO-8859-1 (hojas de cálculo antiguas)
	Delimiter rune // ',' por defecto
}

// table filas de un CSV indexadas por nombre de columna.
type table struct {
	name   string
	cols   map[string]int
	rows   [][]string
	lineNo []int
}

func readTable(path string, opts Options, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseTable(path, f, opts, required...)
}

func parseTable(name string, r io.Reader, opts Options, required ...string) (*table, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s vacío", domain.ErrInvalidInput, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	t := &table{name: name, cols: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.cols[h] = i
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s sin columna %q", domain.ErrInvalidInput, name, c)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		t.rows = append(t.rows, rec)
		t.lineNo = append(t.lineNo, line)
	}
	return t, nil
}

// row acceso tipado a una fila.
type row struct {
	t   *table
	rec []string
	n   int
}

func (t *table) each(fn func(r row) error) error {
	for i, rec := range t.rows {
		if err := fn(row{t: t, rec: rec, n: t.lineNo[i]}); err != nil {
			return err
		}
	}
	return nil
}

func (r row) str(col string) string {
	i, ok := r.t.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) float(col string) (float64, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.errf("columna %s: %q no es numérico", col, s)
	}
	return f, nil
}

func (r row) int(col string) (int, error) {
	f, err := r.float(col)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// optFloat nil cuando la celda está vacía.
func (r row) optFloat(col string) (*float64, error) {
	if r.str(col) == "" {
		return nil, nil
	}
	f, err := r.float(col)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r row) bool(col string, def bool) bool {
	switch strings.ToLower(r.str(col)) {
	case "":
		return def
	case "1", "true", "t", "yes", "y", "si", "sí", "s":
		return true
	}
	return false
}

func (r row) errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", domain.ErrInvalidInput, r.t.name, r.n, fmt.Sprintf(format, args...))
}
