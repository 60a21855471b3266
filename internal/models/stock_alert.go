package models

import (
	"time"

	"github.com/google/uuid"
)

// StockAlert records one low-stock detection made by the background sweep.
type StockAlert struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WarehouseID string    `json:"warehouseId" db:"warehouse_id"`
	Barcode     float64   `json:"barcode" db:"barcode"`
	MinQuantity int       `json:"minQuantity" db:"min_quantity"`
	Current     int       `json:"current" db:"current_count"`
	Delta       int       `json:"delta" db:"delta"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
