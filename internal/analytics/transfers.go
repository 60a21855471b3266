package analytics

import (
	"time"

	"salonstock/internal/normalize"
)

// referenceDate picks the timestamp a transfer is bucketed by: creation,
// then scheduled, then reception.
func referenceDate(t normalize.Transfer) *time.Time {
	if t.CreatedAt != nil {
		return t.CreatedAt
	}
	if t.ScheduledDate != nil {
		return t.ScheduledDate
	}
	return t.ReceivedAt
}

// transferInScope matches a transfer touching the warehouse on either end.
func transferInScope(t normalize.Transfer, warehouseID string) bool {
	if warehouseID == "" {
		return true
	}
	return t.SourceWarehouseID == warehouseID || t.DestinationWarehouseID == warehouseID
}

// ComputeReception summarizes the reception pipeline over the range.
// Cancelled transfers are excluded everywhere. ArrivingToday counts the
// transfers whose reference date shares the calendar day of the range end.
func ComputeReception(transfers []normalize.Transfer, r DateRange, warehouseID string) ReceptionMetrics {
	var m ReceptionMetrics
	endDay := r.End.Format(dayFormat)
	for _, t := range transfers {
		if t.IsCancelled || !transferInScope(t, warehouseID) {
			continue
		}
		ref := referenceDate(t)
		if ref == nil || !r.Contains(*ref) {
			continue
		}
		switch {
		case t.IsCompleted:
			m.Completed++
			m.CompletedItems += t.TotalItems
		case t.IsPending:
			m.Pending++
			m.PendingItems += t.TotalItems
		}
		if ref.Format(dayFormat) == endDay {
			m.ArrivingToday++
		}
	}
	return m
}

// ComputeTransferTrend buckets non-cancelled transfers by the calendar day
// of their reference date.
func ComputeTransferTrend(transfers []normalize.Transfer, r DateRange, warehouseID string) []TrendPoint {
	times := make([]time.Time, 0, len(transfers))
	for _, t := range transfers {
		if t.IsCancelled || !transferInScope(t, warehouseID) {
			continue
		}
		if ref := referenceDate(t); ref != nil {
			times = append(times, *ref)
		}
	}
	return bucketByDay(r, times)
}
