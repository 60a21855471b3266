package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"salonstock/internal/analytics"
	"salonstock/internal/models"
)

// Content types the export formats are served with.
const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// RenderReport produces the report bytes for one snapshot in the requested
// format and returns them with their content type.
func RenderReport(format string, snapshot *analytics.Snapshot) ([]byte, string, error) {
	switch format {
	case models.ReportFormatCSV:
		data, err := renderCSVReport(snapshot)
		return data, contentTypeCSV, err
	case models.ReportFormatXLSX:
		data, err := renderXLSXReport(snapshot)
		return data, contentTypeXLSX, err
	case models.ReportFormatPDF:
		data, err := renderPDFReport(snapshot)
		return data, contentTypePDF, err
	}
	return nil, "", fmt.Errorf("unsupported report format: %s", format)
}

func scopeLabel(snapshot *analytics.Snapshot) string {
	if snapshot.WarehouseID == "" {
		return "All warehouses"
	}
	return snapshot.WarehouseID
}

func formatBarcode(barcode float64) string {
	return strconv.FormatFloat(barcode, 'f', -1, 64)
}

// renderCSVReport writes every metric section into one CSV document, sections
// separated by blank rows.
func renderCSVReport(snapshot *analytics.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Inventory Metrics Report"},
		{"Scope", scopeLabel(snapshot)},
		{"From", snapshot.Range.Start.Format("2006-01-02")},
		{"To", snapshot.Range.End.Format("2006-01-02")},
		{"Generated At", snapshot.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{},
		{"Low Stock"},
		{"Warehouse", "Barcode", "Minimum", "Current", "Short By", "Uses"},
	}
	for _, item := range snapshot.LowStock {
		rows = append(rows, []string{
			item.WarehouseID,
			formatBarcode(item.Barcode),
			strconv.Itoa(item.MinQuantity),
			strconv.Itoa(item.Current),
			strconv.Itoa(item.Delta),
			strconv.Itoa(item.UsageCount),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Reception"},
		[]string{"Pending Transfers", strconv.Itoa(snapshot.Reception.Pending)},
		[]string{"Completed Transfers", strconv.Itoa(snapshot.Reception.Completed)},
		[]string{"Pending Items", strconv.Itoa(snapshot.Reception.PendingItems)},
		[]string{"Completed Items", strconv.Itoa(snapshot.Reception.CompletedItems)},
		[]string{"Arriving Today", strconv.Itoa(snapshot.Reception.ArrivingToday)},
		[]string{},
		[]string{"Usage"},
		[]string{"Items In Use", strconv.Itoa(snapshot.Usage.InUse)},
		[]string{"Idle Items", strconv.Itoa(snapshot.Usage.Idle)},
		[]string{"Top Products"},
		[]string{"Barcode", "Uses"},
	)
	for _, product := range snapshot.Usage.TopProducts {
		rows = append(rows, []string{formatBarcode(product.Barcode), strconv.Itoa(product.Uses)})
	}

	rows = append(rows,
		[]string{},
		[]string{"Orders"},
		[]string{"Open", strconv.Itoa(snapshot.Orders.Open)},
		[]string{"Sent", strconv.Itoa(snapshot.Orders.Sent)},
		[]string{"Received", strconv.Itoa(snapshot.Orders.Received)},
		[]string{"Average Age (days)", strconv.FormatFloat(snapshot.Orders.AverageAgeDays, 'f', 1, 64)},
		[]string{},
		[]string{"Kits"},
		[]string{"Total Kits", strconv.Itoa(snapshot.Kits.TotalKits)},
		[]string{"Total Items", strconv.Itoa(snapshot.Kits.TotalItems)},
		[]string{"Active Items", strconv.Itoa(snapshot.Kits.ActiveItems)},
		[]string{"Returned Items", strconv.Itoa(snapshot.Kits.ReturnedItems)},
		[]string{},
		[]string{"Transfer Trend"},
		[]string{"Date", "Transfers"},
	)
	for _, point := range snapshot.TransferTrend {
		rows = append(rows, []string{point.Date, strconv.Itoa(point.Count)})
	}

	rows = append(rows,
		[]string{},
		[]string{"Product Use Trend"},
		[]string{"Date", "Uses"},
	)
	for _, point := range snapshot.ProductUseTrend {
		rows = append(rows, []string{point.Date, strconv.Itoa(point.Count)})
	}

	rows = append(rows,
		[]string{},
		[]string{"Employee Activity"},
		[]string{"Employee", "Items In Use"},
	)
	for _, activity := range snapshot.EmployeeActivity {
		rows = append(rows, []string{activity.EmployeeName, strconv.Itoa(activity.ItemsInUse)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderXLSXReport writes the same sections onto a single worksheet.
func renderXLSXReport(snapshot *analytics.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Dashboard"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	writeRow := func(values ...interface{}) {
		cell := fmt.Sprintf("A%d", row)
		_ = f.SetSheetRow(sheet, cell, &values)
		row++
	}

	writeRow("Inventory Metrics Report")
	writeRow("Scope", scopeLabel(snapshot))
	writeRow("From", snapshot.Range.Start.Format("2006-01-02"))
	writeRow("To", snapshot.Range.End.Format("2006-01-02"))
	writeRow("Generated At", snapshot.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	row++
	writeRow("Low Stock")
	writeRow("Warehouse", "Barcode", "Minimum", "Current", "Short By", "Uses")
	for _, item := range snapshot.LowStock {
		writeRow(item.WarehouseID, formatBarcode(item.Barcode), item.MinQuantity, item.Current, item.Delta, item.UsageCount)
	}

	row++
	writeRow("Reception")
	writeRow("Pending Transfers", snapshot.Reception.Pending)
	writeRow("Completed Transfers", snapshot.Reception.Completed)
	writeRow("Pending Items", snapshot.Reception.PendingItems)
	writeRow("Completed Items", snapshot.Reception.CompletedItems)
	writeRow("Arriving Today", snapshot.Reception.ArrivingToday)

	row++
	writeRow("Usage")
	writeRow("Items In Use", snapshot.Usage.InUse)
	writeRow("Idle Items", snapshot.Usage.Idle)
	writeRow("Top Products")
	writeRow("Barcode", "Uses")
	for _, product := range snapshot.Usage.TopProducts {
		writeRow(formatBarcode(product.Barcode), product.Uses)
	}

	row++
	writeRow("Orders")
	writeRow("Open", snapshot.Orders.Open)
	writeRow("Sent", snapshot.Orders.Sent)
	writeRow("Received", snapshot.Orders.Received)
	writeRow("Average Age (days)", snapshot.Orders.AverageAgeDays)

	row++
	writeRow("Kits")
	writeRow("Total Kits", snapshot.Kits.TotalKits)
	writeRow("Total Items", snapshot.Kits.TotalItems)
	writeRow("Active Items", snapshot.Kits.ActiveItems)
	writeRow("Returned Items", snapshot.Kits.ReturnedItems)

	row++
	writeRow("Transfer Trend")
	writeRow("Date", "Transfers")
	for _, point := range snapshot.TransferTrend {
		writeRow(point.Date, point.Count)
	}

	row++
	writeRow("Product Use Trend")
	writeRow("Date", "Uses")
	for _, point := range snapshot.ProductUseTrend {
		writeRow(point.Date, point.Count)
	}

	row++
	writeRow("Employee Activity")
	writeRow("Employee", "Items In Use")
	for _, activity := range snapshot.EmployeeActivity {
		writeRow(activity.EmployeeName, activity.ItemsInUse)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPDFReport creates a printable summary of the snapshot
func renderPDFReport(snapshot *analytics.Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Set margins
	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41) // Dark gray

	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "SALON INVENTORY REPORT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Scope: %s", scopeLabel(snapshot)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", snapshot.Range.Start.Format("02-Jan-2006"), snapshot.Range.End.Format("02-Jan-2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", snapshot.GeneratedAt.Format("02-Jan-2006 15:04 MST")))
	pdf.Ln(10)

	// Low stock table
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("LOW STOCK (%d items)", len(snapshot.LowStock)))
	pdf.Ln(8)

	headers := []string{"Warehouse", "Barcode", "Min", "Current", "Short", "Uses"}
	colWidths := []float64{45, 45, 20, 20, 20, 20}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240) // Light gray background
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	if len(snapshot.LowStock) == 0 {
		pdf.CellFormat(170, 7, "No items below their configured minimum", "1", 0, "C", false, 0, "")
		pdf.Ln(7)
	}
	for _, item := range snapshot.LowStock {
		pdf.CellFormat(colWidths[0], 7, item.WarehouseID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, formatBarcode(item.Barcode), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, strconv.Itoa(item.MinQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, strconv.Itoa(item.Current), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, strconv.Itoa(item.Delta), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 7, strconv.Itoa(item.UsageCount), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(5)

	// Metric summaries in two label/value columns
	writeSummary := func(title string, lines [][2]string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, line := range lines {
			pdf.CellFormat(80, 6, line[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, line[1], "", 0, "R", false, 0, "")
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	writeSummary("RECEPTION", [][2]string{
		{"Pending transfers", strconv.Itoa(snapshot.Reception.Pending)},
		{"Completed transfers", strconv.Itoa(snapshot.Reception.Completed)},
		{"Pending items", strconv.Itoa(snapshot.Reception.PendingItems)},
		{"Completed items", strconv.Itoa(snapshot.Reception.CompletedItems)},
		{"Arriving today", strconv.Itoa(snapshot.Reception.ArrivingToday)},
	})

	usageLines := [][2]string{
		{"Items in use", strconv.Itoa(snapshot.Usage.InUse)},
		{"Idle items", strconv.Itoa(snapshot.Usage.Idle)},
	}
	for _, product := range snapshot.Usage.TopProducts {
		usageLines = append(usageLines, [2]string{fmt.Sprintf("Product %s", formatBarcode(product.Barcode)), strconv.Itoa(product.Uses)})
	}
	writeSummary("USAGE", usageLines)

	writeSummary("ORDERS", [][2]string{
		{"Open", strconv.Itoa(snapshot.Orders.Open)},
		{"Sent", strconv.Itoa(snapshot.Orders.Sent)},
		{"Received", strconv.Itoa(snapshot.Orders.Received)},
		{"Average age (days)", strconv.FormatFloat(snapshot.Orders.AverageAgeDays, 'f', 1, 64)},
	})

	writeSummary("KITS", [][2]string{
		{"Total kits", strconv.Itoa(snapshot.Kits.TotalKits)},
		{"Total items", strconv.Itoa(snapshot.Kits.TotalItems)},
		{"Active items", strconv.Itoa(snapshot.Kits.ActiveItems)},
		{"Returned items", strconv.Itoa(snapshot.Kits.ReturnedItems)},
	})

	trendLines := make([][2]string, 0, len(snapshot.TransferTrend))
	for _, point := range snapshot.TransferTrend {
		trendLines = append(trendLines, [2]string{point.Date, strconv.Itoa(point.Count)})
	}
	if len(trendLines) > 0 {
		writeSummary("TRANSFER TREND", trendLines)
	}

	useTrendLines := make([][2]string, 0, len(snapshot.ProductUseTrend))
	for _, point := range snapshot.ProductUseTrend {
		useTrendLines = append(useTrendLines, [2]string{point.Date, strconv.Itoa(point.Count)})
	}
	if len(useTrendLines) > 0 {
		writeSummary("PRODUCT USE TREND", useTrendLines)
	}

	activityLines := make([][2]string, 0, len(snapshot.EmployeeActivity))
	for _, activity := range snapshot.EmployeeActivity {
		activityLines = append(activityLines, [2]string{activity.EmployeeName, strconv.Itoa(activity.ItemsInUse)})
	}
	if len(activityLines) > 0 {
		writeSummary("EMPLOYEE ACTIVITY", activityLines)
	}

	// Footer
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 6, "This is a computer generated report")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
