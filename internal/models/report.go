package models

import (
	"time"

	"github.com/google/uuid"
)

// Formats a dashboard report can be exported as.
const (
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
	ReportFormatPDF  = "pdf"
)

// Lifecycle states of a report export.
const (
	ReportStatusQueued     = "queued"
	ReportStatusProcessing = "processing"
	ReportStatusCompleted  = "completed"
	ReportStatusFailed     = "failed"
)

// ReportJob tracks one dashboard export through the work queue.
type ReportJob struct {
	ID          uuid.UUID  `json:"id"`
	Format      string     `json:"format"`
	WarehouseID string     `json:"warehouseId,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Status      string     `json:"status"`
	ObjectName  string     `json:"objectName,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ValidReportFormat reports whether format names a supported export format.
func ValidReportFormat(format string) bool {
	switch format {
	case ReportFormatCSV, ReportFormatXLSX, ReportFormatPDF:
		return true
	}
	return false
}
