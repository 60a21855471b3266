package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"salonstock/internal/analytics"
	"salonstock/internal/caching"
	"salonstock/internal/config"
	"salonstock/internal/models"
	"salonstock/internal/normalize"
	"salonstock/internal/repositories"
	"salonstock/internal/upstream"
)

// Resource names used to scope upstream payload cache entries.
const (
	resourceProductStocks = "product-stocks"
	resourceTransfers     = "transfers"
	resourceOrders        = "orders"
	resourceKits          = "kits"
	resourceCabinets      = "cabinets"
)

type DashboardService interface {
	// Snapshot access
	GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error)
	RefreshDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error)

	// Raw input collection (shared with report generation and alerting)
	CollectInputs(ctx context.Context, warehouseID string) (analytics.Inputs, error)
}

type dashboardService struct {
	fetcher    upstream.Fetcher
	cache      caching.CacheService
	limitsRepo repositories.StockLimitRepository
	syncConfig config.SyncConfig
}

func NewDashboardService(fetcher upstream.Fetcher, cache caching.CacheService, limitsRepo repositories.StockLimitRepository, syncConfig config.SyncConfig) DashboardService {
	return &dashboardService{
		fetcher:    fetcher,
		cache:      cache,
		limitsRepo: limitsRepo,
		syncConfig: syncConfig,
	}
}

// GetDashboard returns the metrics snapshot for one warehouse scope and date
// range, serving from cache when a fresh copy exists.
func (s *dashboardService) GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	if cached, err := s.cache.GetDashboard(ctx, warehouseID, rng); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: dashboard cache read failed: %v", err)
	}

	return s.RefreshDashboard(ctx, warehouseID, rng)
}

// RefreshDashboard recomputes the snapshot from live inputs and rewrites the
// cache entry, ignoring any cached copy.
func (s *dashboardService) RefreshDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	inputs, err := s.CollectInputs(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	snapshot := analytics.ComputeSnapshot(inputs, rng, warehouseID)
	snapshot.GeneratedAt = time.Now().UTC()

	if err := s.cache.SetDashboard(ctx, warehouseID, rng, &snapshot, s.dashboardTTL()); err != nil {
		log.Printf("WARN: dashboard cache write failed: %v", err)
	}

	return &snapshot, nil
}

// CollectInputs gathers the upstream payloads and configured limits one
// snapshot is computed from. Payload fetches fail the collection; a cabinet
// fetch failure only degrades items to their raw warehouse identifiers.
func (s *dashboardService) CollectInputs(ctx context.Context, warehouseID string) (analytics.Inputs, error) {
	cabinets := s.collectCabinets(ctx)

	stocksPayload, err := s.fetchPayload(ctx, resourceProductStocks, warehouseID, s.fetcher.FetchProductStocks)
	if err != nil {
		return analytics.Inputs{}, fmt.Errorf("failed to fetch product stocks: %w", err)
	}
	transfersPayload, err := s.fetchPayload(ctx, resourceTransfers, warehouseID, s.fetcher.FetchTransfers)
	if err != nil {
		return analytics.Inputs{}, fmt.Errorf("failed to fetch transfers: %w", err)
	}
	ordersPayload, err := s.fetchPayload(ctx, resourceOrders, warehouseID, s.fetcher.FetchOrders)
	if err != nil {
		return analytics.Inputs{}, fmt.Errorf("failed to fetch orders: %w", err)
	}
	kitsPayload, err := s.fetchPayload(ctx, resourceKits, warehouseID, s.fetcher.FetchKits)
	if err != nil {
		return analytics.Inputs{}, fmt.Errorf("failed to fetch kits: %w", err)
	}

	limits, err := s.limitsRepo.ListForWarehouse(ctx, warehouseID)
	if err != nil {
		return analytics.Inputs{}, fmt.Errorf("failed to load stock limits: %w", err)
	}

	return analytics.Inputs{
		Items:     normalize.Items(stocksPayload, cabinets),
		Transfers: normalize.Transfers(transfersPayload),
		Orders:    normalize.Orders(ordersPayload),
		Kits:      normalize.Kits(kitsPayload),
		Limits:    dereferenceLimits(limits),
	}, nil
}

// fetchPayload serves one upstream resource through the payload cache.
func (s *dashboardService) fetchPayload(ctx context.Context, resource, warehouseID string, fetch func(context.Context, string) (interface{}, error)) (interface{}, error) {
	if cached, err := s.cache.GetPayload(ctx, resource, warehouseID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: payload cache read failed for %s: %v", resource, err)
	}

	payload, err := fetch(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPayload(ctx, resource, warehouseID, payload, s.payloadTTL()); err != nil {
		log.Printf("WARN: payload cache write failed for %s: %v", resource, err)
	}

	return payload, nil
}

// collectCabinets resolves the cabinet to warehouse mapping. Cabinets are
// auxiliary, so failures return an empty lookup instead of an error.
func (s *dashboardService) collectCabinets(ctx context.Context) normalize.CabinetLookup {
	if cached, err := s.cache.GetPayload(ctx, resourceCabinets, ""); err == nil && cached != nil {
		return normalize.Cabinets(cached)
	}

	payload, err := s.fetcher.FetchCabinets(ctx)
	if err != nil {
		log.Printf("WARN: cabinets fetch failed, resolving items without cabinet mapping: %v", err)
		return normalize.CabinetLookup{}
	}

	if err := s.cache.SetPayload(ctx, resourceCabinets, "", payload, s.payloadTTL()); err != nil {
		log.Printf("WARN: payload cache write failed for %s: %v", resourceCabinets, err)
	}

	return normalize.Cabinets(payload)
}

func (s *dashboardService) payloadTTL() time.Duration {
	if s.syncConfig.PayloadTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.syncConfig.PayloadTTLSeconds) * time.Second
}

func (s *dashboardService) dashboardTTL() time.Duration {
	if s.syncConfig.DashboardTTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(s.syncConfig.DashboardTTLSeconds) * time.Second
}

func dereferenceLimits(limits []*models.StockLimit) []models.StockLimit {
	out := make([]models.StockLimit, 0, len(limits))
	for _, limit := range limits {
		if limit != nil {
			out = append(out, *limit)
		}
	}
	return out
}
