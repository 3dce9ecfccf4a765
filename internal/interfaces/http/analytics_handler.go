package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
)

// AnalyticsHandler maneja los reportes de ingresos y rentabilidad.
type AnalyticsHandler struct {
	revenue *analytics.RevenueUseCase
	margins *analytics.MarginsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(revenue *analytics.RevenueUseCase, margins *analytics.MarginsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{revenue: revenue, margins: margins}
}

// GetRevenue godoc
// @Summary      Ingresos por mes
// @Description  Devuelve siempre 12 meses; los meses sin ventas valen 0.
// @Tags         reports
// @Produce      json
// @Param        year  query  int  false  "Año (default: año actual)"
// @Success      200  {object}  dto.RevenueReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/revenue [get]
func (h *AnalyticsHandler) GetRevenue(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	report, err := h.revenue.RevenueByMonth(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetMargins godoc
// @Summary      Ranking de artículos por utilidad (Pareto 80/20)
// @Tags         reports
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. artículos en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.MarginsReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	var req dto.MarginsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	report, err := h.margins.GetMarginsReport(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
