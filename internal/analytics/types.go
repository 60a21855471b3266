package analytics

// LowStockItem is one warehouse and barcode combination holding fewer items
// than its configured minimum. Delta is how many items short it is.
type LowStockItem struct {
	WarehouseID string  `json:"warehouseId"`
	Barcode     float64 `json:"barcode"`
	MinQuantity int     `json:"minQuantity"`
	Current     int     `json:"current"`
	Delta       int     `json:"delta"`
	UsageCount  int     `json:"usageCount"`
}

// ReceptionMetrics summarizes the transfer reception pipeline for a range.
type ReceptionMetrics struct {
	Pending        int `json:"pending"`
	Completed      int `json:"completed"`
	PendingItems   int `json:"pendingItems"`
	CompletedItems int `json:"completedItems"`
	ArrivingToday  int `json:"arrivingToday"`
}

// ProductUsage is the summed use count of one product barcode.
type ProductUsage struct {
	Barcode float64 `json:"barcode"`
	Uses    int     `json:"uses"`
}

// UsageBreakdown splits items into in-use and idle and ranks the most used
// products.
type UsageBreakdown struct {
	InUse       int            `json:"inUse"`
	Idle        int            `json:"idle"`
	TopProducts []ProductUsage `json:"topProducts"`
}

// OrderMetrics counts replenishment orders by status. AverageAgeDays is the
// mean age of the still-open orders, in days, one decimal.
type OrderMetrics struct {
	Open           int     `json:"open"`
	Sent           int     `json:"sent"`
	Received       int     `json:"received"`
	AverageAgeDays float64 `json:"averageAgeDays"`
}

// KitMetrics sums kit utilization for a warehouse scope.
type KitMetrics struct {
	TotalKits     int `json:"totalKits"`
	TotalItems    int `json:"totalItems"`
	ActiveItems   int `json:"activeItems"`
	ReturnedItems int `json:"returnedItems"`
}

// TrendPoint is one non-empty day in a trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EmployeeActivity is the number of items one employee currently has in use.
type EmployeeActivity struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ItemsInUse   int    `json:"itemsInUse"`
}
