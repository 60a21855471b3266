package models

import (
	"time"

	"github.com/google/uuid"
)

// Limit types a stock limit can carry. Quantity limits drive low-stock
// detection; usage limits are stored and surfaced but not evaluated yet.
const (
	LimitTypeQuantity = "quantity"
	LimitTypeUsage    = "usage"
)

// StockLimit configures the minimum number of items a warehouse should hold
// of one product barcode.
type StockLimit struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WarehouseID string    `json:"warehouseId" db:"warehouse_id"`
	Barcode     float64   `json:"barcode" db:"barcode"`
	MinQuantity int       `json:"minQuantity" db:"min_quantity"`
	LimitType   string    `json:"limitType" db:"limit_type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// StockLimitFilter holds the filters the limit listing endpoint accepts.
type StockLimitFilter struct {
	WarehouseID string   `json:"warehouseId,omitempty"`
	Barcode     *float64 `json:"barcode,omitempty"`
	LimitType   string   `json:"limitType,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}
