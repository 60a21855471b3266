package normalize

import (
	"strings"
	"time"
)

// Order statuses after normalization. Every order resolves to exactly one.
const (
	OrderOpen     = "open"
	OrderSent     = "sent"
	OrderReceived = "received"
)

// Order is the canonical form of a replenishment order placed against the
// central warehouse (CEDIS).
type Order struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	CreatedAt         *time.Time `json:"createdAt"`
	SourceWarehouseID string     `json:"sourceWarehouseId"`
	CedisWarehouseID  string     `json:"cedisWarehouseId"`
}

var (
	receivedOrderStatuses = map[string]bool{
		"received":  true,
		"delivered": true,
		"completed": true,
	}
	sentOrderStatuses = map[string]bool{
		"sent":       true,
		"shipped":    true,
		"in_transit": true,
		"in transit": true,
	}
)

// Orders normalizes an order response: a bare array, {data: [...]} or
// {orders: [...]}, merged. Rows without a resolvable id are dropped.
func Orders(payload any) []Order {
	rows := orderRows(payload)
	out := make([]Order, 0, len(rows))
	for _, raw := range rows {
		row := Record(raw)
		if row == nil {
			continue
		}
		o, ok := orderFromRow(row)
		if !ok {
			continue
		}
		out = append(out, o)
	}
	return out
}

func orderRows(payload any) []any {
	if rows := Array(payload); rows != nil {
		return rows
	}
	rec := Record(payload)
	if rec == nil {
		return nil
	}
	rows := make([]any, 0)
	rows = append(rows, Array(rec["data"])...)
	rows = append(rows, Array(rec["orders"])...)
	return rows
}

func orderFromRow(row map[string]any) (Order, bool) {
	id := stringField(row, "id", "uuid", "orderId")
	if id == "" {
		return Order{}, false
	}

	o := Order{
		ID:                id,
		Status:            orderStatus(row),
		CreatedAt:         dateField(row, "createdAt", "created_at", "date"),
		SourceWarehouseID: WarehouseID(row),
	}
	o.CedisWarehouseID = warehouseField(row,
		"cedisWarehouseId", "cedis_warehouse_id", "cedisId", "cedis")

	return o, true
}

// orderStatus derives the canonical status. Explicit reception beats explicit
// shipment beats whatever the status string says; the default is open.
func orderStatus(row map[string]any) string {
	if flagField(row, "isReceived") {
		return OrderReceived
	}
	if flagField(row, "isSent") {
		return OrderSent
	}
	s := strings.ToLower(strings.TrimSpace(String(row["status"])))
	switch {
	case receivedOrderStatuses[s]:
		return OrderReceived
	case sentOrderStatuses[s]:
		return OrderSent
	}
	return OrderOpen
}
