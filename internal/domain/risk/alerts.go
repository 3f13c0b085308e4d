package risk

import (
	"fmt"
	"sort"
	"time"
)

// Alert entrada del feed de alertas del tablero.
type Alert struct {
	ID            string
	MaterialID    string
	MaterialName  string
	WarehouseID   string
	WarehouseName string
	Severity      Severity
	UTR           float64
	PAR           float64
	Message       string
	Action        string
	CreatedAt     time.Time
}

// BuildAlertFeed arma el feed ordenado RED primero y luego por UTR descendente.
// Sin filtro solo incluye RED y AMBER. Los IDs tienen la forma ALT-AAAAMMDD-NNNN.
func BuildAlertFeed(triggers []MaterialTrigger, filter []Severity, asOf time.Time) []Alert {
	include := func(s Severity) bool { return s.NeedsReplenishment() }
	if len(filter) > 0 {
		set := make(map[Severity]bool, len(filter))
		for _, s := range filter {
			set[s] = true
		}
		include = func(s Severity) bool { return set[s] }
	}

	selected := make([]MaterialTrigger, 0, len(triggers))
	for _, t := range triggers {
		if include(t.Severity) {
			selected = append(selected, t)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.Severity.Priority() != b.Severity.Priority() {
			return a.Severity.Priority() < b.Severity.Priority()
		}
		return a.UTR > b.UTR
	})

	day := asOf.Format("20060102")
	feed := make([]Alert, 0, len(selected))
	for i, t := range selected {
		feed = append(feed, Alert{
			ID:            fmt.Sprintf("ALT-%s-%04d", day, i+1),
			MaterialID:    t.MaterialID,
			MaterialName:  t.MaterialName,
			WarehouseID:   t.WarehouseID,
			WarehouseName: t.WarehouseName,
			Severity:      t.Severity,
			UTR:           t.UTR,
			PAR:           t.PAR,
			Message:       fmt.Sprintf("%s: %s en %s", t.Label, displayName(t.MaterialName, t.MaterialID), displayName(t.WarehouseName, t.WarehouseID)),
			Action:        t.Action,
			CreatedAt:     asOf,
		})
	}
	return feed
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// Distribution conteo de triggers por severidad.
type Distribution struct {
	Red           int
	Amber         int
	Green         int
	Indeterminate int
}

// Distribute cuenta los triggers por nivel.
func Distribute(triggers []MaterialTrigger) Distribution {
	var d Distribution
	for _, t := range triggers {
		switch t.Severity {
		case SeverityRed:
			d.Red++
		case SeverityAmber:
			d.Amber++
		case SeverityGreen:
			d.Green++
		default:
			d.Indeterminate++
		}
	}
	return d
}

// Total pares evaluados.
func (d Distribution) Total() int { return d.Red + d.Amber + d.Green + d.Indeterminate }

// Share proporción de un nivel sobre el total (0 si no hay pares).
func (d Distribution) Share(s Severity) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	var n int
	switch s {
	case SeverityRed:
		n = d.Red
	case SeverityAmber:
		n = d.Amber
	case SeverityGreen:
		n = d.Green
	default:
		n = d.Indeterminate
	}
	return float64(n) / float64(total)
}
