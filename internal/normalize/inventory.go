package normalize

import (
	"strings"
	"time"
)

// InventoryItem is the canonical form of one physical stock item. A nil
// Barcode means the backend did not report a product code; empty location
// and employee ids mean the item is not associated with one.
type InventoryItem struct {
	ID           string     `json:"id"`
	Barcode      *float64   `json:"barcode"`
	WarehouseID  string     `json:"warehouseId"`
	CabinetID    string     `json:"cabinetId"`
	Description  string     `json:"description"`
	IsBeingUsed  bool       `json:"isBeingUsed"`
	NumberOfUses int        `json:"numberOfUses"`
	LastUsed     *time.Time `json:"lastUsed"`
	FirstUsed    *time.Time `json:"firstUsed"`
	LastUsedBy   string     `json:"lastUsedBy"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
}

// Items normalizes an inventory response into canonical records. The backend
// returns either a bare array, {data: [...]}, or {data: {warehouse: [...],
// cabinet: [...]}}; for the split shape warehouse rows come first. Rows
// without a resolvable id are dropped. The cabinet lookup backfills the
// warehouse association for cabinet-held items that omit it.
func Items(payload any, cabinets CabinetLookup) []InventoryItem {
	rows := itemRows(payload)
	out := make([]InventoryItem, 0, len(rows))
	for _, raw := range rows {
		row := Record(raw)
		if row == nil {
			continue
		}
		item, ok := itemFromRow(row, cabinets)
		if !ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

func itemRows(payload any) []any {
	if rows := Array(payload); rows != nil {
		return rows
	}
	rec := Record(payload)
	if rec == nil {
		return nil
	}
	if rows := Array(rec["data"]); rows != nil {
		return rows
	}
	if data := Record(rec["data"]); data != nil {
		rows := make([]any, 0)
		rows = append(rows, Array(data["warehouse"])...)
		rows = append(rows, Array(data["cabinet"])...)
		return rows
	}
	return nil
}

func itemFromRow(row map[string]any, cabinets CabinetLookup) (InventoryItem, bool) {
	stock := Record(row["productStock"])
	if stock == nil {
		stock = row
	}

	id := stringField(stock, "id", "uuid", "productStockId")
	if id == "" {
		id = stringField(row, "id")
	}
	if id == "" {
		return InventoryItem{}, false
	}

	item := InventoryItem{ID: id}

	if n, ok := numberField(stock, "barcode", "good_id", "productId", "product_id"); ok {
		item.Barcode = &n
	}

	item.CabinetID = stringField(stock, "cabinetId", "cabinet_id", "gabineteId")
	if item.CabinetID == "" {
		item.CabinetID = stringField(row, "cabinetId", "cabinet_id", "gabineteId")
	}
	if item.CabinetID == "" {
		if cab := Record(stock["cabinet"]); cab != nil {
			item.CabinetID = stringField(cab, "id", "uuid")
		}
	}
	if item.CabinetID == "" {
		if cab := Record(row["cabinet"]); cab != nil {
			item.CabinetID = stringField(cab, "id", "uuid")
		}
	}

	item.WarehouseID = WarehouseID(stock)
	if item.WarehouseID == "" {
		item.WarehouseID = WarehouseID(row)
	}
	if item.WarehouseID == "" && item.CabinetID != "" {
		item.WarehouseID = cabinets[item.CabinetID].WarehouseID
	}

	item.IsBeingUsed = flagField(stock, "isBeingUsed", "inUse", "beingUsed") ||
		flagField(row, "isBeingUsed", "inUse", "beingUsed")

	if n, ok := numberField(stock, "numberOfUses", "number_of_uses", "uses"); ok && n > 0 {
		item.NumberOfUses = int(n)
	}

	item.LastUsed = dateField(stock, "lastUsed", "last_used")
	if item.LastUsed == nil {
		item.LastUsed = dateField(row, "lastUsed", "last_used")
	}
	item.FirstUsed = dateField(stock, "firstUsed", "first_used")
	if item.FirstUsed == nil {
		item.FirstUsed = dateField(row, "firstUsed", "first_used")
	}

	item.LastUsedBy = stringField(stock, "lastUsedBy", "last_used_by")
	item.Description = stringField(stock, "description", "productDescription", "name")

	emp := Record(row["employee"])
	if emp == nil {
		emp = Record(stock["employee"])
	}
	if emp != nil {
		item.EmployeeID = stringField(emp, "id", "uuid")
		item.EmployeeName = strings.TrimSpace(String(emp["name"]) + " " + String(emp["surname"]))
	}
	if item.EmployeeID == "" {
		item.EmployeeID = stringField(stock, "employeeId", "employee_id")
	}
	if item.EmployeeID == "" {
		item.EmployeeID = stringField(row, "employeeId", "employee_id")
	}

	return item, true
}
