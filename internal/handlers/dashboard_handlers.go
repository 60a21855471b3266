package handlers

import (
	"net/http"
	"time"

	"salonstock/internal/common"
	"salonstock/internal/config"
	"salonstock/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the computed metrics snapshots
type DashboardHandlers struct {
	dashboardService services.DashboardService
	syncConfig       config.SyncConfig
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(dashboardService services.DashboardService, syncConfig config.SyncConfig) *DashboardHandlers {
	return &DashboardHandlers{
		dashboardService: dashboardService,
		syncConfig:       syncConfig,
	}
}

// GetDashboard handles getting the metrics snapshot for a warehouse scope
// and date range. An empty warehouseId means the global view.
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID := c.QueryParam("warehouseId")

	rng, err := common.ResolveDateRange(
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
		h.syncConfig.DefaultRangeDays,
		time.Now().UTC(),
	)
	if err != nil {
		return common.SendValidationError(c, "dateRange", err.Error())
	}

	snapshot, err := h.dashboardService.GetDashboard(ctx, warehouseID, rng)
	if err != nil {
		return common.SendUpstreamError(c, "Failed to build dashboard snapshot")
	}

	return c.JSON(http.StatusOK, snapshot)
}

// RefreshDashboard recomputes the snapshot from live upstream data, skipping
// any cached copy.
func (h *DashboardHandlers) RefreshDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID := c.QueryParam("warehouseId")

	rng, err := common.ResolveDateRange(
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
		h.syncConfig.DefaultRangeDays,
		time.Now().UTC(),
	)
	if err != nil {
		return common.SendValidationError(c, "dateRange", err.Error())
	}

	snapshot, err := h.dashboardService.RefreshDashboard(ctx, warehouseID, rng)
	if err != nil {
		return common.SendUpstreamError(c, "Failed to refresh dashboard snapshot")
	}

	return c.JSON(http.StatusOK, snapshot)
}
