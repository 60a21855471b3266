package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type definitions
const (
	TypeReportGenerate = "report_generate"
)

// ReportGeneratePayload defines the payload for report generation tasks
type ReportGeneratePayload struct {
	JobID       uuid.UUID `json:"job_id"`
	Format      string    `json:"format"`
	WarehouseID string    `json:"warehouse_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
}

// NewReportGenerateTask creates a new report generation task
func NewReportGenerateTask(jobID uuid.UUID, format, warehouseID, startDate, endDate string) (*asynq.Task, error) {
	payload := ReportGeneratePayload{
		JobID:       jobID,
		Format:      format,
		WarehouseID: warehouseID,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReportGenerate, data), nil
}

// ReportGenerateHandler handles report generation tasks
func (g *ReportGenerator) ReportGenerateHandler(ctx context.Context, t *asynq.Task) error {
	var payload ReportGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal report payload: %w", err)
	}

	log.Printf("Starting report generation for job %s, format %s", payload.JobID, payload.Format)

	job, err := g.Generate(ctx, payload)
	if err != nil {
		log.Printf("Report generation failed for job %s: %v", payload.JobID, err)
		return err
	}

	log.Printf("Report generation completed for job %s: %s", payload.JobID, job.ObjectName)
	return nil
}
