package handlers

import (
	"net/http"
	"strings"
	"time"

	"salonstock/internal/common"
	"salonstock/internal/config"
	"salonstock/internal/jobs"
	"salonstock/internal/models"

	"github.com/labstack/echo/v4"
)

// ReportHandlers handles dashboard export requests
type ReportHandlers struct {
	reportGenerator *jobs.ReportGenerator
	syncConfig      config.SyncConfig
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(reportGenerator *jobs.ReportGenerator, syncConfig config.SyncConfig) *ReportHandlers {
	return &ReportHandlers{
		reportGenerator: reportGenerator,
		syncConfig:      syncConfig,
	}
}

// CreateReportRequest represents the export request payload
type CreateReportRequest struct {
	Format      string `json:"format"`
	WarehouseID string `json:"warehouseId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// CreateReport enqueues a dashboard export and returns the job record the
// caller polls for the download link.
func (h *ReportHandlers) CreateReport(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = models.ReportFormatCSV
	}
	if !models.ValidReportFormat(format) {
		return common.SendValidationError(c, "format", "must be one of: csv, xlsx, pdf")
	}

	rng, err := common.ResolveDateRange(req.StartDate, req.EndDate, h.syncConfig.DefaultRangeDays, time.Now().UTC())
	if err != nil {
		return common.SendValidationError(c, "dateRange", err.Error())
	}

	job, err := h.reportGenerator.EnqueueReport(ctx, format, req.WarehouseID, rng)
	if err != nil {
		return common.SendServerError(c, "Failed to enqueue report")
	}

	return c.JSON(http.StatusAccepted, job)
}

// GetReport handles polling the status of a report job
func (h *ReportHandlers) GetReport(c echo.Context) error {
	ctx := c.Request().Context()

	jobID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	job, err := h.reportGenerator.GetReportJob(ctx, jobID)
	if err != nil {
		return common.SendServerError(c, "Failed to load report job")
	}
	if job == nil {
		return common.SendNotFoundError(c, "Report job")
	}

	return c.JSON(http.StatusOK, job)
}
