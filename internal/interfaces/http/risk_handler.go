package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
)

// RiskHandler expone la evaluación de riesgo de la red.
type RiskHandler struct {
	risk   *inventory.RiskUseCase
	report *inventory.RiskReportUseCase
}

// NewRiskHandler construye el handler. report puede ser nil (sin PDF).
func NewRiskHandler(riskUC *inventory.RiskUseCase, report *inventory.RiskReportUseCase) *RiskHandler {
	return &RiskHandler{risk: riskUC, report: report}
}

// Triggers godoc
// @Summary      Severidad por material y bodega
// @Description  Evalúa cada par material/bodega y devuelve severidad (RED/AMBER/GREEN/INDETERMINATE),
//
//	indicadores UTR/PAR/OTR, días de cobertura, distribución y ahorro estimado.
//
// @Tags         risk
// @Produce      json
// @Param        material_id   query  string  false  "IDs de material separados por coma"
// @Param        warehouse_id  query  string  false  "IDs de bodega separados por coma"
// @Param        severity      query  string  false  "RED,AMBER,GREEN,INDETERMINATE"
// @Success      200  {object}  dto.RiskTriggersResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/risk/triggers [get]
func (h *RiskHandler) Triggers(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", err.Error())
	}
	ev, err := h.risk.EvaluateNetwork(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToTriggersResponse(ev))
}

// Alerts godoc
// @Summary      Feed de alertas RED/AMBER
// @Tags         risk
// @Produce      json
// @Param        material_id   query  string  false  "IDs de material separados por coma"
// @Param        warehouse_id  query  string  false  "IDs de bodega separados por coma"
// @Param        severity      query  string  false  "RED o AMBER (vacío = ambas)"
// @Success      200  {object}  dto.AlertFeedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/risk/alerts [get]
func (h *RiskHandler) Alerts(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", err.Error())
	}
	ev, err := h.risk.EvaluateNetwork(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToAlertFeedResponse(ev.Alerts))
}

// Report godoc
// @Summary      Reporte PDF de riesgo
// @Tags         risk
// @Produce      application/pdf
// @Param        material_id   query  string  false  "IDs de material separados por coma"
// @Param        warehouse_id  query  string  false  "IDs de bodega separados por coma"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/risk/report.pdf [get]
func (h *RiskHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "reporte no disponible"})
	}
	filter, err := parseFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", err.Error())
	}
	doc, err := h.report.Render(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="riesgo-%s.pdf"`, c.Query("warehouse_id", "red")))
	return c.Send(doc)
}
