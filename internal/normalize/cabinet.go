package normalize

// CabinetInfo is what the backend knows about one cabinet: the warehouse it
// belongs to and its display name.
type CabinetInfo struct {
	WarehouseID string `json:"warehouseId"`
	CabinetName string `json:"cabinetName"`
}

// CabinetLookup maps a cabinet id to its warehouse association. It backfills
// the warehouse on inventory items the backend reports with a cabinet only.
type CabinetLookup map[string]CabinetInfo

// Cabinets builds the lookup from a cabinet listing response, either
// {data: [...]} or a bare array. Rows without a cabinet id are skipped;
// duplicate ids keep the last row seen.
func Cabinets(payload any) CabinetLookup {
	rows := Array(payload)
	if rows == nil {
		if rec := Record(payload); rec != nil {
			rows = Array(rec["data"])
		}
	}
	lookup := make(CabinetLookup, len(rows))
	for _, raw := range rows {
		row := Record(raw)
		if row == nil {
			continue
		}
		id := stringField(row, "cabinetId", "cabinet_id", "id")
		if id == "" {
			continue
		}
		lookup[id] = CabinetInfo{
			WarehouseID: WarehouseID(row),
			CabinetName: stringField(row, "cabinetName", "cabinet_name", "name"),
		}
	}
	return lookup
}
