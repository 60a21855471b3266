package analytics

import "salonstock/internal/normalize"

// ComputeKits sums kit utilization across the kits assigned to the scoped
// warehouse.
func ComputeKits(kits []normalize.Kit, warehouseID string) KitMetrics {
	var m KitMetrics
	for _, k := range kits {
		if warehouseID != "" && k.AssignedWarehouseID != warehouseID {
			continue
		}
		m.TotalKits++
		m.TotalItems += k.TotalItems
		m.ActiveItems += k.ActiveItems
		m.ReturnedItems += k.ReturnedItems
	}
	return m
}
