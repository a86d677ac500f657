package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	reports service.ReportService
}

func NewDashboardHandler(reports service.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// GetDashboard handles GET /dashboard: catalog counters, current-month sales,
// trailing profit series and the recent activity feed in one snapshot.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	snapshot, err := h.reports.Dashboard(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snapshot)
}
