package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"salonstock/internal/analytics"
	"salonstock/internal/caching"
	"salonstock/internal/models"
	"salonstock/internal/services"
)

const (
	// How long a job status record stays queryable after enqueue.
	reportStatusTTL = 24 * time.Hour
	// How long a generated download link stays valid.
	reportURLExpiry = 24 * time.Hour

	reportQueue = "reports"
)

// ReportGenerator produces dashboard exports asynchronously. Enqueued jobs
// track their status in the cache under the job ID returned to the caller.
type ReportGenerator struct {
	dashboards services.DashboardService
	storage    services.MinioService
	cache      caching.CacheService
	client     *asynq.Client
	bucket     string
}

func NewReportGenerator(dashboards services.DashboardService, storage services.MinioService, cache caching.CacheService, client *asynq.Client, bucket string) *ReportGenerator {
	if bucket == "" {
		bucket = "salonstock-reports"
	}
	return &ReportGenerator{
		dashboards: dashboards,
		storage:    storage,
		cache:      cache,
		client:     client,
		bucket:     bucket,
	}
}

// EnqueueReport records a queued job and hands the generation work to the
// task queue. The returned job carries the ID used to poll for status.
func (g *ReportGenerator) EnqueueReport(ctx context.Context, format, warehouseID string, rng analytics.DateRange) (*models.ReportJob, error) {
	if !models.ValidReportFormat(format) {
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}

	job := &models.ReportJob{
		ID:          uuid.New(),
		Format:      format,
		WarehouseID: warehouseID,
		StartDate:   rng.Start,
		EndDate:     rng.End,
		Status:      models.ReportStatusQueued,
		CreatedAt:   time.Now().UTC(),
	}

	if err := g.cache.SetReportJob(ctx, job, reportStatusTTL); err != nil {
		return nil, fmt.Errorf("failed to record report job: %w", err)
	}

	task, err := NewReportGenerateTask(job.ID, format, warehouseID, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	info, err := g.client.Enqueue(task, asynq.Queue(reportQueue), asynq.MaxRetry(3), asynq.Timeout(5*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue report task: %w", err)
	}

	log.Printf("Enqueued report task %s for job %s on queue %s", info.ID, job.ID, info.Queue)
	return job, nil
}

// GetReportJob returns the tracked status of one report job, or nil when the
// ID is unknown or its record has expired.
func (g *ReportGenerator) GetReportJob(ctx context.Context, jobID uuid.UUID) (*models.ReportJob, error) {
	return g.cache.GetReportJob(ctx, jobID.String())
}

// Generate runs one report job end to end: snapshot, render, upload, presign.
// The job record is updated at each transition so pollers see progress.
func (g *ReportGenerator) Generate(ctx context.Context, payload ReportGeneratePayload) (*models.ReportJob, error) {
	job, err := g.cache.GetReportJob(ctx, payload.JobID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load report job: %w", err)
	}
	if job == nil {
		// Status record expired or was never written. Rebuild it from the
		// payload so the run still completes.
		job = jobFromPayload(payload)
	}

	job.Status = models.ReportStatusProcessing
	g.storeJob(ctx, job)

	rng, err := payloadRange(payload)
	if err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	snapshot, err := g.dashboards.GetDashboard(ctx, payload.WarehouseID, rng)
	if err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	data, contentType, err := services.RenderReport(job.Format, snapshot)
	if err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	if err := g.storage.EnsureBucketExists(ctx, g.bucket); err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	objectName := fmt.Sprintf("reports/%s.%s", job.ID, job.Format)
	if err := g.storage.UploadObject(ctx, g.bucket, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	downloadURL, err := g.storage.GetPresignedURL(g.bucket, objectName, reportURLExpiry)
	if err != nil {
		return nil, g.failJob(ctx, job, err)
	}

	now := time.Now().UTC()
	job.Status = models.ReportStatusCompleted
	job.ObjectName = objectName
	job.DownloadURL = downloadURL
	job.Error = ""
	job.CompletedAt = &now
	g.storeJob(ctx, job)

	return job, nil
}

// failJob marks the record failed and returns the original error for the
// queue to retry.
func (g *ReportGenerator) failJob(ctx context.Context, job *models.ReportJob, cause error) error {
	job.Status = models.ReportStatusFailed
	job.Error = cause.Error()
	g.storeJob(ctx, job)
	return cause
}

func (g *ReportGenerator) storeJob(ctx context.Context, job *models.ReportJob) {
	if err := g.cache.SetReportJob(ctx, job, reportStatusTTL); err != nil {
		log.Printf("WARN: failed to store report job %s status: %v", job.ID, err)
	}
}

func jobFromPayload(payload ReportGeneratePayload) *models.ReportJob {
	job := &models.ReportJob{
		ID:          payload.JobID,
		Format:      payload.Format,
		WarehouseID: payload.WarehouseID,
		Status:      models.ReportStatusQueued,
		CreatedAt:   time.Now().UTC(),
	}
	if start, err := time.Parse("2006-01-02", payload.StartDate); err == nil {
		job.StartDate = start
	}
	if end, err := time.Parse("2006-01-02", payload.EndDate); err == nil {
		job.EndDate = end
	}
	return job
}

func payloadRange(payload ReportGeneratePayload) (analytics.DateRange, error) {
	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return analytics.DateRange{}, errors.New("report payload carries an invalid start date")
	}
	end, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return analytics.DateRange{}, errors.New("report payload carries an invalid end date")
	}
	return analytics.NewDateRange(start, end), nil
}
