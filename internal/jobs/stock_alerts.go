package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"salonstock/internal/analytics"
	"salonstock/internal/caching"
	"salonstock/internal/models"
	"salonstock/internal/repositories"
	"salonstock/internal/services"
)

// How long one warehouse and barcode combination stays muted after alerting.
const alertDedupeTTL = 24 * time.Hour

// LowStockAlertService sweeps current stock against configured limits and
// records an alert row for every combination that fell below its minimum.
type LowStockAlertService struct {
	dashboards services.DashboardService
	alertsRepo repositories.StockAlertRepository
	cache      caching.CacheService
}

func NewLowStockAlertService(dashboards services.DashboardService, alertsRepo repositories.StockAlertRepository, cache caching.CacheService) *LowStockAlertService {
	return &LowStockAlertService{
		dashboards: dashboards,
		alertsRepo: alertsRepo,
		cache:      cache,
	}
}

// CheckLowStock evaluates every warehouse and returns the combinations that
// were newly alerted this run. Combinations alerted within the dedupe window
// are skipped.
func (a *LowStockAlertService) CheckLowStock(ctx context.Context) ([]analytics.LowStockItem, error) {
	inputs, err := a.dashboards.CollectInputs(ctx, "")
	if err != nil {
		log.Printf("Failed to collect inputs for low stock check: %v", err)
		return nil, err
	}

	lowStock := analytics.ComputeLowStock(inputs.Items, inputs.Limits, "")

	var newAlerts []analytics.LowStockItem
	for _, item := range lowStock {
		key := caching.AlertSentKey(item.WarehouseID, item.Barcode)

		sent, err := a.cache.GetString(ctx, key)
		if err != nil {
			log.Printf("Failed to read alert marker %s: %v", key, err)
			continue
		}
		if sent != "" {
			continue
		}

		alert := &models.StockAlert{
			ID:          uuid.New(),
			WarehouseID: item.WarehouseID,
			Barcode:     item.Barcode,
			MinQuantity: item.MinQuantity,
			Current:     item.Current,
			Delta:       item.Delta,
		}
		if err := a.alertsRepo.Create(ctx, alert); err != nil {
			log.Printf("Failed to record alert for warehouse %s barcode %v: %v", item.WarehouseID, item.Barcode, err)
			continue
		}

		if err := a.cache.SetString(ctx, key, time.Now().UTC().Format(time.RFC3339), alertDedupeTTL); err != nil {
			log.Printf("Failed to set alert marker %s: %v", key, err)
		}

		newAlerts = append(newAlerts, item)
	}

	return newAlerts, nil
}

func (a *LowStockAlertService) LogLowStockAlerts(alerts []analytics.LowStockItem) {
	if len(alerts) == 0 {
		log.Println("No new low stock alerts")
		return
	}

	log.Printf("Recorded %d new low stock alerts:", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Warehouse %s product %v holds %d units (minimum: %d, short by %d)",
			alert.WarehouseID,
			alert.Barcode,
			alert.Current,
			alert.MinQuantity,
			alert.Delta)
	}
}

// ListRecentAlerts exposes the stored alert log for the API.
func (a *LowStockAlertService) ListRecentAlerts(ctx context.Context, warehouseID string, limit int) ([]*models.StockAlert, error) {
	return a.alertsRepo.ListRecent(ctx, warehouseID, limit)
}

// PruneAlerts deletes alert rows older than the retention window.
func (a *LowStockAlertService) PruneAlerts(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := a.alertsRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to prune stock alerts: %v", err)
		return err
	}
	if deleted > 0 {
		log.Printf("Pruned %d stock alerts older than %s", deleted, cutoff.Format("2006-01-02"))
	}
	return nil
}

// ScheduledLowStockCheck is the entrypoint the scheduler runs.
func (a *LowStockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	log.Println("Starting scheduled low stock check")

	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}

	a.LogLowStockAlerts(alerts)

	log.Println("Scheduled low stock check completed successfully")
	return nil
}
