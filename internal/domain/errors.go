package domain

import (
	"errors"

	"github.com/jhoicas/nexus-inventory/pkg/geo"
)

// Errores de dominio.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Errores del motor de riesgo y traslados. Se reportan por par
	// (material, bodega); ninguno aborta un lote completo.
	ErrInvalidLocation     = geo.ErrInvalidLocation
	ErrMissingDemandSignal = errors.New("sin señal de demanda ni stock mínimo para derivarla")
	ErrUnfulfillable       = errors.New("faltante sin fuentes disponibles")
)
