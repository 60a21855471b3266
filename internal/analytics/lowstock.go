package analytics

import (
	"sort"
	"strconv"

	"salonstock/internal/models"
	"salonstock/internal/normalize"
)

// ComputeLowStock evaluates configured stock limits against current item
// counts. Two counters are kept per warehouse and barcode: the quantity
// counter sees only warehouse-held stock (items without a cabinet), the
// usage counter sees every item. Quantity limits, and limits without a type,
// are checked against the quantity counter; usage limits are carried as
// input but not checked. Results are sorted by largest shortfall first,
// barcode as tie-break.
func ComputeLowStock(items []normalize.InventoryItem, limits []models.StockLimit, warehouseID string) []LowStockItem {
	quantityByKey := make(map[string]int)
	usageByKey := make(map[string]int)
	for _, item := range items {
		if warehouseID != "" && item.WarehouseID != warehouseID {
			continue
		}
		if item.Barcode == nil {
			continue
		}
		key := stockKey(item.WarehouseID, *item.Barcode)
		usageByKey[key]++
		if item.CabinetID == "" {
			quantityByKey[key]++
		}
	}

	out := make([]LowStockItem, 0)
	for _, limit := range limits {
		if warehouseID != "" && limit.WarehouseID != warehouseID {
			continue
		}
		if limit.LimitType != "" && limit.LimitType != models.LimitTypeQuantity {
			continue
		}
		key := stockKey(limit.WarehouseID, limit.Barcode)
		current := quantityByKey[key]
		if current >= limit.MinQuantity {
			continue
		}
		out = append(out, LowStockItem{
			WarehouseID: limit.WarehouseID,
			Barcode:     limit.Barcode,
			MinQuantity: limit.MinQuantity,
			Current:     current,
			Delta:       limit.MinQuantity - current,
			UsageCount:  usageByKey[key],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Delta != out[j].Delta {
			return out[i].Delta > out[j].Delta
		}
		return out[i].Barcode < out[j].Barcode
	})
	return out
}

func stockKey(warehouseID string, barcode float64) string {
	return warehouseID + "::" + strconv.FormatFloat(barcode, 'f', -1, 64)
}
