package normalize

import (
	"strings"
	"time"
)

// Transfer is the canonical form of a stock movement between warehouses.
// The lifecycle booleans are derived from explicit flags or from the status
// string, whichever the backend happened to send.
type Transfer struct {
	ID                     string     `json:"id"`
	Status                 string     `json:"status"`
	IsCompleted            bool       `json:"isCompleted"`
	IsPending              bool       `json:"isPending"`
	IsCancelled            bool       `json:"isCancelled"`
	TotalItems             int        `json:"totalItems"`
	CreatedAt              *time.Time `json:"createdAt"`
	ReceivedAt             *time.Time `json:"receivedAt"`
	ScheduledDate          *time.Time `json:"scheduledDate"`
	SourceWarehouseID      string     `json:"sourceWarehouseId"`
	DestinationWarehouseID string     `json:"destinationWarehouseId"`
}

// Status strings the backend uses for each lifecycle state, lower-cased.
var (
	completedStatuses = map[string]bool{
		"completed": true,
		"complete":  true,
		"done":      true,
		"received":  true,
	}
	pendingStatuses = map[string]bool{
		"pending":     true,
		"in_progress": true,
		"in progress": true,
		"processing":  true,
		"scheduled":   true,
		"sent":        true,
	}
	cancelledStatuses = map[string]bool{
		"cancelled": true,
		"canceled":  true,
		"rejected":  true,
		"void":      true,
	}
)

// Transfers normalizes a transfer response. The backend has served bare
// arrays, {data: [...]}, {transfers: [...]} and {data: {transfers: [...]}};
// every matching branch is merged. Rows without a resolvable id are dropped.
func Transfers(payload any) []Transfer {
	rows := transferRows(payload)
	out := make([]Transfer, 0, len(rows))
	for _, raw := range rows {
		row := Record(raw)
		if row == nil {
			continue
		}
		t, ok := transferFromRow(row)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

func transferRows(payload any) []any {
	if rows := Array(payload); rows != nil {
		return rows
	}
	rec := Record(payload)
	if rec == nil {
		return nil
	}
	rows := make([]any, 0)
	rows = append(rows, Array(rec["data"])...)
	rows = append(rows, Array(rec["transfers"])...)
	if data := Record(rec["data"]); data != nil {
		rows = append(rows, Array(data["transfers"])...)
	}
	return rows
}

func transferFromRow(row map[string]any) (Transfer, bool) {
	id := stringField(row, "id", "uuid", "transferId")
	if id == "" {
		return Transfer{}, false
	}

	status := strings.ToLower(strings.TrimSpace(String(row["status"])))

	t := Transfer{
		ID:          id,
		Status:      status,
		IsCompleted: flagField(row, "isCompleted", "completed") || completedStatuses[status],
		IsPending:   flagField(row, "isPending", "pending") || pendingStatuses[status],
		IsCancelled: flagField(row, "isCancelled", "cancelled") || cancelledStatuses[status],
	}

	if n, ok := numberField(row, "totalItems", "itemCount", "items_count"); ok {
		if n > 0 {
			t.TotalItems = int(n)
		}
	} else {
		t.TotalItems = sumLineItems(row)
	}

	t.CreatedAt = dateField(row, "createdAt", "created_at", "date")
	t.ReceivedAt = dateField(row, "receivedAt", "received_at")
	t.ScheduledDate = dateField(row, "scheduledDate", "scheduled_date", "scheduledFor")

	t.SourceWarehouseID = warehouseField(row,
		"sourceWarehouseId", "source_warehouse_id", "originWarehouseId",
		"sourceWarehouse", "originWarehouse", "fromWarehouseId", "from")
	t.DestinationWarehouseID = warehouseField(row,
		"destinationWarehouseId", "destination_warehouse_id", "destWarehouseId",
		"targetWarehouseId", "destinationWarehouse", "toWarehouseId", "to")

	return t, true
}

// sumLineItems totals the detail lines of a transfer that carries no
// explicit item count. Lines without a readable quantity count as one item.
func sumLineItems(row map[string]any) int {
	var lines []any
	for _, k := range []string{"items", "details", "lines"} {
		if lines = Array(row[k]); lines != nil {
			break
		}
	}
	total := 0
	for _, raw := range lines {
		qty := 1.0
		if line := Record(raw); line != nil {
			if n, ok := numberField(line, "quantity", "qty", "count"); ok {
				qty = n
			}
		}
		total += int(qty)
	}
	if total < 0 {
		return 0
	}
	return total
}
