package analytics

import (
	"time"

	"salonstock/internal/models"
	"salonstock/internal/normalize"
)

// Inputs bundles the normalized records a snapshot is computed from.
type Inputs struct {
	Items     []normalize.InventoryItem
	Transfers []normalize.Transfer
	Orders    []normalize.Order
	Kits      []normalize.Kit
	Limits    []models.StockLimit
}

// Snapshot is the full set of dashboard metrics for one range and scope.
type Snapshot struct {
	WarehouseID      string             `json:"warehouseId,omitempty"`
	Range            DateRange          `json:"range"`
	GeneratedAt      time.Time          `json:"generatedAt"`
	LowStock         []LowStockItem     `json:"lowStock"`
	Reception        ReceptionMetrics   `json:"reception"`
	Usage            UsageBreakdown     `json:"usage"`
	Orders           OrderMetrics       `json:"orders"`
	Kits             KitMetrics         `json:"kits"`
	TransferTrend    []TrendPoint       `json:"transferTrend"`
	ProductUseTrend  []TrendPoint       `json:"productUseTrend"`
	EmployeeActivity []EmployeeActivity `json:"employeeActivity"`
}

// ComputeSnapshot runs every metric over the same inputs. GeneratedAt is
// left zero for the caller to stamp.
func ComputeSnapshot(in Inputs, r DateRange, warehouseID string) Snapshot {
	return Snapshot{
		WarehouseID:      warehouseID,
		Range:            r,
		LowStock:         ComputeLowStock(in.Items, in.Limits, warehouseID),
		Reception:        ComputeReception(in.Transfers, r, warehouseID),
		Usage:            ComputeUsage(in.Items, r, warehouseID),
		Orders:           ComputeOrders(in.Orders, r, warehouseID),
		Kits:             ComputeKits(in.Kits, warehouseID),
		TransferTrend:    ComputeTransferTrend(in.Transfers, r, warehouseID),
		ProductUseTrend:  ComputeProductUseTrend(in.Items, r, warehouseID),
		EmployeeActivity: ComputeEmployeeActivity(in.Items, warehouseID),
	}
}
