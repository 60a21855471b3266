package normalize

// Kit is the canonical form of an item bundle assigned to an employee for a
// working period.
type Kit struct {
	ID                  string `json:"id"`
	TotalItems          int    `json:"totalItems"`
	ReturnedItems       int    `json:"returnedItems"`
	ActiveItems         int    `json:"activeItems"`
	AssignedWarehouseID string `json:"assignedWarehouseId"`
}

// Kits normalizes a kit response: a bare array, {data: [...]} or
// {kits: [...]}, merged. Rows without a resolvable id are dropped.
func Kits(payload any) []Kit {
	rows := kitRows(payload)
	out := make([]Kit, 0, len(rows))
	for _, raw := range rows {
		row := Record(raw)
		if row == nil {
			continue
		}
		k, ok := kitFromRow(row)
		if !ok {
			continue
		}
		out = append(out, k)
	}
	return out
}

func kitRows(payload any) []any {
	if rows := Array(payload); rows != nil {
		return rows
	}
	rec := Record(payload)
	if rec == nil {
		return nil
	}
	rows := make([]any, 0)
	rows = append(rows, Array(rec["data"])...)
	rows = append(rows, Array(rec["kits"])...)
	return rows
}

func kitFromRow(row map[string]any) (Kit, bool) {
	id := stringField(row, "id", "uuid", "kitId")
	if id == "" {
		return Kit{}, false
	}

	k := Kit{ID: id}

	// The summary sub-object is authoritative when present, even when the
	// item list disagrees with it.
	if summary := Record(row["summary"]); summary != nil {
		if n, ok := numberField(summary, "totalItems", "total_items", "total"); ok && n > 0 {
			k.TotalItems = int(n)
		}
		if n, ok := numberField(summary, "returnedItems", "returned_items", "returned"); ok && n > 0 {
			k.ReturnedItems = int(n)
		}
	} else {
		items := Array(row["items"])
		k.TotalItems = len(items)
		for _, raw := range items {
			line := Record(raw)
			if line == nil {
				continue
			}
			if flagField(line, "returned", "isReturned", "wasReturned") {
				k.ReturnedItems++
			}
		}
	}

	k.ActiveItems = k.TotalItems - k.ReturnedItems
	if k.ActiveItems < 0 {
		k.ActiveItems = 0
	}

	k.AssignedWarehouseID = warehouseField(row, "assignedWarehouseId", "assigned_warehouse_id")
	if k.AssignedWarehouseID == "" {
		k.AssignedWarehouseID = WarehouseID(row)
	}

	return k, true
}
