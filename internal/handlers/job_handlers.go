package handlers

import (
	"net/http"
	"strconv"

	"salonstock/internal/common"
	"salonstock/internal/jobs"
	"salonstock/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

type JobHandlers struct {
	alertService *jobs.LowStockAlertService
	scheduler    *background.JobScheduler
}

func NewJobHandlers(alertService *jobs.LowStockAlertService, scheduler *background.JobScheduler) *JobHandlers {
	return &JobHandlers{
		alertService: alertService,
		scheduler:    scheduler,
	}
}

// GetStockAlerts handler returns the recorded low stock alert log
func (h *JobHandlers) GetStockAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID := c.QueryParam("warehouseId")

	limit := 50 // Default page size
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}

	alerts, err := h.alertService.ListRecentAlerts(ctx, warehouseID, limit)
	if err != nil {
		return common.SendServerError(c, "Failed to list stock alerts")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
	})
}

// TriggerLowStockCheck handler runs the alert sweep outside its schedule
func (h *JobHandlers) TriggerLowStockCheck(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.alertService.CheckLowStock(ctx)
	if err != nil {
		return common.SendUpstreamError(c, "Failed to run low stock check")
	}

	h.alertService.LogLowStockAlerts(alerts)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"newAlerts": alerts,
	})
}

// GetJobStatus handler reports which background jobs are registered
func (h *JobHandlers) GetJobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}
