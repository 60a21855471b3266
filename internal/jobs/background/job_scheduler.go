package background

import (
	"context"
	"log"
	"sync"
	"time"

	"salonstock/internal/analytics"
	"salonstock/internal/config"
	"salonstock/internal/jobs"
	"salonstock/internal/repositories"
	"salonstock/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// How long alert rows stay queryable before the retention job removes them.
const alertRetention = 90 * 24 * time.Hour

// JobScheduler manages the periodic background jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	dashboardSvc services.DashboardService
	alertSvc     *jobs.LowStockAlertService
	limitsRepo   repositories.StockLimitRepository
	syncConfig   config.SyncConfig
	jobJobs      map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(dashboardSvc services.DashboardService, alertSvc *jobs.LowStockAlertService,
	limitsRepo repositories.StockLimitRepository, syncConfig config.SyncConfig) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		alertSvc:     alertSvc,
		limitsRepo:   limitsRepo,
		syncConfig:   syncConfig,
		jobJobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Dashboard warmup job
	refreshJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.refreshInterval()),
		gocron.NewTask(js.refreshDashboards, context.Background()),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobJobs["dashboard-refresh"] = refreshJob
	}

	// Low stock sweep job
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.alertInterval()),
		gocron.NewTask(js.alertSvc.ScheduledLowStockCheck, context.Background()),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alerts job: %v", err)
	} else {
		js.jobJobs["stock-alerts"] = alertsJob
	}

	// Alert retention job - daily
	retentionJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.pruneAlerts, context.Background()),
		gocron.WithName("alert-retention"),
	)
	if err != nil {
		log.Printf("Failed to create alert retention job: %v", err)
	} else {
		js.jobJobs["alert-retention"] = retentionJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

// refreshDashboards recomputes the default range snapshot for the global view
// and for every warehouse that has limits configured, so interactive requests
// hit a warm cache.
func (js *JobScheduler) refreshDashboards(ctx context.Context) error {
	log.Printf("Starting dashboard refresh")

	rng := analytics.LastDays(js.defaultRangeDays(), time.Now().UTC())

	scopes := []string{""}
	limits, err := js.limitsRepo.ListForWarehouse(ctx, "")
	if err != nil {
		log.Printf("Failed to list limits for dashboard refresh, warming global scope only: %v", err)
	} else {
		seen := map[string]bool{"": true}
		for _, limit := range limits {
			if !seen[limit.WarehouseID] {
				seen[limit.WarehouseID] = true
				scopes = append(scopes, limit.WarehouseID)
			}
		}
	}

	// Warm scopes in parallel with concurrency control
	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, scope := range scopes {
		wg.Add(1)
		go func(warehouseID string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := js.dashboardSvc.RefreshDashboard(ctx, warehouseID, rng); err != nil {
				log.Printf("Failed to refresh dashboard for scope %q: %v", warehouseID, err)
			} else {
				log.Printf("Refreshed dashboard for scope %q", warehouseID)
			}
		}(scope)
	}

	wg.Wait()
	log.Printf("Completed dashboard refresh for %d scopes", len(scopes))
	return nil
}

func (js *JobScheduler) pruneAlerts(ctx context.Context) error {
	return js.alertSvc.PruneAlerts(ctx, alertRetention)
}

func (js *JobScheduler) refreshInterval() time.Duration {
	if js.syncConfig.RefreshIntervalMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(js.syncConfig.RefreshIntervalMinutes) * time.Minute
}

func (js *JobScheduler) alertInterval() time.Duration {
	if js.syncConfig.AlertIntervalMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(js.syncConfig.AlertIntervalMinutes) * time.Minute
}

func (js *JobScheduler) defaultRangeDays() int {
	if js.syncConfig.DefaultRangeDays <= 0 {
		return 30
	}
	return js.syncConfig.DefaultRangeDays
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)

	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobJobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobJobs, name)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	jobs := make([]string, 0, len(js.jobJobs))

	for name := range js.jobJobs {
		jobs = append(jobs, name)
	}

	status["jobs"] = jobs

	return status
}
