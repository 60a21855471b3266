package normalize

import "strings"

// warehouseFieldCandidates lists every field name the backend has been seen
// using for a warehouse reference, in precedence order. The order is a
// tie-break rule: the first field that yields a usable identifier wins, so
// reordering entries changes which warehouse ambiguous records resolve to.
var warehouseFieldCandidates = []string{
	"warehouseId",
	"warehouse_id",
	"warehouseUuid",
	"warehouseCode",
	"currentWarehouse",
	"currentWarehouseId",
	"originWarehouse",
	"originWarehouseId",
	"warehouse",
	"almacenId",
	"almacen",
	"location",
	"locationId",
	"branchId",
}

// WarehouseIdentifier flattens a raw warehouse reference to its canonical
// string form. Numeric identifiers keep their printed form, so an id of 0
// survives as "0" instead of being treated as absent. Unusable values
// collapse to "".
func WarehouseIdentifier(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return String(t)
	}
	return ""
}

// warehouseValue resolves a single candidate value. Object values contribute
// their id, uuid or code sub-field, in that order.
func warehouseValue(v any) string {
	if sub := Record(v); sub != nil {
		for _, k := range []string{"id", "uuid", "code"} {
			if id := WarehouseIdentifier(sub[k]); id != "" {
				return id
			}
		}
		return ""
	}
	return WarehouseIdentifier(v)
}

// warehouseField scans keys in order and returns the first candidate that
// resolves to a usable identifier.
func warehouseField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		raw, ok := rec[k]
		if !ok {
			continue
		}
		if id := warehouseValue(raw); id != "" {
			return id
		}
	}
	return ""
}

// WarehouseID scans rec for the first known warehouse field that yields a
// usable identifier, or "" when none does.
func WarehouseID(rec map[string]any) string {
	if rec == nil {
		return ""
	}
	return warehouseField(rec, warehouseFieldCandidates...)
}
