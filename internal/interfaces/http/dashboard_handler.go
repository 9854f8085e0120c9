package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/imprenta-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard del dueño.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen financiero del mes.
// GET /api/dashboard/summary?month=YYYY-MM
//
// Sin month se usa el mes en curso.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetSeries devuelve ingresos, gastos y utilidad de los últimos 6 meses con datos.
// GET /api/dashboard/series
func (h *DashboardHandler) GetSeries(c *fiber.Ctx) error {
	series, err := h.uc.GetSeries(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(series)
}
