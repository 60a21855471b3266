package handlers

import (
	"net/http"
	"strconv"

	"salonstock/internal/common"
	"salonstock/internal/models"
	"salonstock/internal/services"

	"github.com/labstack/echo/v4"
)

// LimitHandlers handles stock limit configuration requests
type LimitHandlers struct {
	limitService services.StockLimitService
}

// NewLimitHandlers creates a new limit handlers instance
func NewLimitHandlers(limitService services.StockLimitService) *LimitHandlers {
	return &LimitHandlers{
		limitService: limitService,
	}
}

// ListLimitsRequest represents query parameters for listing limits
type ListLimitsRequest struct {
	WarehouseID string `query:"warehouseId"`
	LimitType   string `query:"limitType"`
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}

// ListLimits handles getting the configured stock limits
func (h *LimitHandlers) ListLimits(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLimitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	filter := &models.StockLimitFilter{
		WarehouseID: req.WarehouseID,
		LimitType:   req.LimitType,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}

	// Barcode is bound by hand: zero is a valid barcode, so the filter only
	// applies when the parameter is present at all.
	if barcodeParam := c.QueryParam("barcode"); barcodeParam != "" {
		barcode, err := strconv.ParseFloat(barcodeParam, 64)
		if err != nil {
			return common.SendValidationError(c, "barcode", "must be numeric")
		}
		filter.Barcode = &barcode
	}

	limits, err := h.limitService.ListLimits(ctx, filter)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"limits": limits,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// CreateLimitRequest represents the limit creation request payload
type CreateLimitRequest struct {
	WarehouseID string   `json:"warehouseId" validate:"required"`
	Barcode     *float64 `json:"barcode" validate:"required"`
	MinQuantity int      `json:"minQuantity" validate:"required"`
	LimitType   string   `json:"limitType"`
}

// CreateLimit handles creating a new stock limit
func (h *LimitHandlers) CreateLimit(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLimitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Barcode == nil {
		return common.SendValidationError(c, "barcode", "barcode is required")
	}

	limit := &models.StockLimit{
		WarehouseID: req.WarehouseID,
		Barcode:     *req.Barcode,
		MinQuantity: req.MinQuantity,
		LimitType:   req.LimitType,
	}

	if err := h.limitService.CreateLimit(ctx, limit); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, limit)
}

// GetLimit handles getting a single stock limit by ID
func (h *LimitHandlers) GetLimit(c echo.Context) error {
	ctx := c.Request().Context()

	limitID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	limit, err := h.limitService.GetLimit(ctx, limitID)
	if err != nil {
		return common.SendNotFoundError(c, "Stock limit")
	}

	return c.JSON(http.StatusOK, limit)
}

// UpdateLimitRequest represents the limit update request payload
type UpdateLimitRequest struct {
	MinQuantity int    `json:"minQuantity" validate:"required"`
	LimitType   string `json:"limitType"`
}

// UpdateLimit handles changing the threshold or type of an existing limit
func (h *LimitHandlers) UpdateLimit(c echo.Context) error {
	ctx := c.Request().Context()

	limitID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateLimitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	limit, err := h.limitService.UpdateLimit(ctx, limitID, req.MinQuantity, req.LimitType)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, limit)
}

// DeleteLimit handles removing a stock limit
func (h *LimitHandlers) DeleteLimit(c echo.Context) error {
	ctx := c.Request().Context()

	limitID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.limitService.DeleteLimit(ctx, limitID); err != nil {
		return common.SendNotFoundError(c, "Stock limit")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Stock limit deleted",
	})
}
