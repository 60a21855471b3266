package analytics

import (
	"math"

	"salonstock/internal/normalize"
)

// ComputeOrders counts in-range replenishment orders by status and averages
// the age of the open ones, in days from creation to the range end, one
// decimal. Sent and received orders never contribute to the average.
func ComputeOrders(orders []normalize.Order, r DateRange, warehouseID string) OrderMetrics {
	var m OrderMetrics
	var totalAge float64
	for _, o := range orders {
		if warehouseID != "" && o.SourceWarehouseID != warehouseID && o.CedisWarehouseID != warehouseID {
			continue
		}
		if o.CreatedAt == nil || !r.Contains(*o.CreatedAt) {
			continue
		}
		switch o.Status {
		case normalize.OrderReceived:
			m.Received++
		case normalize.OrderSent:
			m.Sent++
		default:
			m.Open++
			totalAge += r.End.Sub(*o.CreatedAt).Hours() / 24
		}
	}
	if m.Open > 0 {
		m.AverageAgeDays = math.Round(totalAge/float64(m.Open)*10) / 10
	}
	return m
}
