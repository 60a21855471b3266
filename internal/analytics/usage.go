package analytics

import (
	"sort"
	"time"

	"salonstock/internal/normalize"
)

// The bucket items land in when no employee is associated with them.
const (
	unassignedEmployeeID   = "unassigned"
	unassignedEmployeeName = "Sin asignar"
)

func itemInScope(item normalize.InventoryItem, warehouseID string) bool {
	return warehouseID == "" || item.WarehouseID == warehouseID
}

// ComputeUsage splits the scoped items into in-use and idle, date
// independent, and ranks the five most used barcodes. An item's uses count
// toward the ranking when its last use falls in the range or was never
// recorded.
func ComputeUsage(items []normalize.InventoryItem, r DateRange, warehouseID string) UsageBreakdown {
	breakdown := UsageBreakdown{TopProducts: []ProductUsage{}}
	usesByBarcode := make(map[float64]int)
	for _, item := range items {
		if !itemInScope(item, warehouseID) {
			continue
		}
		if item.IsBeingUsed {
			breakdown.InUse++
		} else {
			breakdown.Idle++
		}
		if item.Barcode == nil {
			continue
		}
		if item.LastUsed != nil && !r.Contains(*item.LastUsed) {
			continue
		}
		usesByBarcode[*item.Barcode] += item.NumberOfUses
	}

	for barcode, uses := range usesByBarcode {
		if uses == 0 {
			continue
		}
		breakdown.TopProducts = append(breakdown.TopProducts, ProductUsage{Barcode: barcode, Uses: uses})
	}
	sort.Slice(breakdown.TopProducts, func(i, j int) bool {
		a, b := breakdown.TopProducts[i], breakdown.TopProducts[j]
		if a.Uses != b.Uses {
			return a.Uses > b.Uses
		}
		return a.Barcode < b.Barcode
	})
	if len(breakdown.TopProducts) > 5 {
		breakdown.TopProducts = breakdown.TopProducts[:5]
	}
	return breakdown
}

// ComputeProductUseTrend buckets item uses by the calendar day they were
// last used.
func ComputeProductUseTrend(items []normalize.InventoryItem, r DateRange, warehouseID string) []TrendPoint {
	times := make([]time.Time, 0, len(items))
	for _, item := range items {
		if !itemInScope(item, warehouseID) {
			continue
		}
		if item.LastUsed != nil {
			times = append(times, *item.LastUsed)
		}
	}
	return bucketByDay(r, times)
}

// ComputeEmployeeActivity groups the items currently in use by the employee
// holding them. Items without an employee land in the unassigned bucket.
// Busiest employees come first; ties order by employee id.
func ComputeEmployeeActivity(items []normalize.InventoryItem, warehouseID string) []EmployeeActivity {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, item := range items {
		if !itemInScope(item, warehouseID) || !item.IsBeingUsed {
			continue
		}
		id, name := item.EmployeeID, item.EmployeeName
		if id == "" {
			id, name = unassignedEmployeeID, unassignedEmployeeName
		}
		counts[id]++
		if names[id] == "" {
			names[id] = name
		}
	}

	out := make([]EmployeeActivity, 0, len(counts))
	for id, n := range counts {
		out = append(out, EmployeeActivity{EmployeeID: id, EmployeeName: names[id], ItemsInUse: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemsInUse != out[j].ItemsInUse {
			return out[i].ItemsInUse > out[j].ItemsInUse
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}
