package services

import (
	"context"
	"log"
	"strings"

	"salonstock/internal/caching"
	"salonstock/internal/common"
	"salonstock/internal/models"
	"salonstock/internal/repositories"

	"github.com/google/uuid"
)

const maxLimitQuantity = 1000000

type StockLimitService interface {
	// Limit management
	CreateLimit(ctx context.Context, limit *models.StockLimit) error
	GetLimit(ctx context.Context, limitID uuid.UUID) (*models.StockLimit, error)
	UpdateLimit(ctx context.Context, limitID uuid.UUID, minQuantity int, limitType string) (*models.StockLimit, error)
	DeleteLimit(ctx context.Context, limitID uuid.UUID) error
	ListLimits(ctx context.Context, filter *models.StockLimitFilter) ([]*models.StockLimit, error)
}

type stockLimitService struct {
	limitsRepo repositories.StockLimitRepository
	cache      caching.CacheService
}

func NewStockLimitService(limitsRepo repositories.StockLimitRepository, cache caching.CacheService) StockLimitService {
	return &stockLimitService{
		limitsRepo: limitsRepo,
		cache:      cache,
	}
}

// CreateLimit validates and stores a new stock limit. Creating a limit with
// the same warehouse, barcode and type as an existing one updates its
// threshold instead of failing.
func (s *stockLimitService) CreateLimit(ctx context.Context, limit *models.StockLimit) error {
	if err := common.ValidateRequiredString(limit.WarehouseID, "warehouse_id"); err != nil {
		return err
	}
	if err := common.ValidateBarcode(limit.Barcode, "barcode"); err != nil {
		return err
	}
	if err := common.ValidatePositiveInteger(limit.MinQuantity, "min_quantity", maxLimitQuantity); err != nil {
		return err
	}

	limitType, err := normalizeLimitType(limit.LimitType)
	if err != nil {
		return err
	}
	limit.LimitType = limitType

	if limit.LimitType == models.LimitTypeUsage {
		// Usage limits are stored and listed but low stock evaluation only
		// considers quantity limits.
		log.Printf("NOTICE: usage limit stored for warehouse %s barcode %v, usage thresholds are not evaluated yet", limit.WarehouseID, limit.Barcode)
	}

	if limit.ID == uuid.Nil {
		limit.ID = uuid.New()
	}

	if err := s.limitsRepo.Create(ctx, limit); err != nil {
		return err
	}

	s.invalidateDashboards(ctx)
	return nil
}

// GetLimit retrieves a single stock limit
func (s *stockLimitService) GetLimit(ctx context.Context, limitID uuid.UUID) (*models.StockLimit, error) {
	return s.limitsRepo.GetByID(ctx, limitID)
}

// UpdateLimit changes the threshold or type of an existing limit.
func (s *stockLimitService) UpdateLimit(ctx context.Context, limitID uuid.UUID, minQuantity int, limitType string) (*models.StockLimit, error) {
	limit, err := s.limitsRepo.GetByID(ctx, limitID)
	if err != nil {
		return nil, err
	}

	if err := common.ValidatePositiveInteger(minQuantity, "min_quantity", maxLimitQuantity); err != nil {
		return nil, err
	}

	normalized := limit.LimitType
	if limitType != "" {
		normalized, err = normalizeLimitType(limitType)
		if err != nil {
			return nil, err
		}
	}

	limit.MinQuantity = minQuantity
	limit.LimitType = normalized

	if err := s.limitsRepo.Update(ctx, limit); err != nil {
		return nil, err
	}

	s.invalidateDashboards(ctx)
	return limit, nil
}

// DeleteLimit removes a limit and clears its alert dedupe marker so the
// combination can alert again if a new limit is configured.
func (s *stockLimitService) DeleteLimit(ctx context.Context, limitID uuid.UUID) error {
	limit, err := s.limitsRepo.GetByID(ctx, limitID)
	if err != nil {
		return err
	}

	if err := s.limitsRepo.Delete(ctx, limitID); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, caching.AlertSentKey(limit.WarehouseID, limit.Barcode)); err != nil {
		log.Printf("WARN: failed to clear alert marker for deleted limit %s: %v", limitID, err)
	}

	s.invalidateDashboards(ctx)
	return nil
}

// ListLimits retrieves limits matching the filter with pagination.
func (s *stockLimitService) ListLimits(ctx context.Context, filter *models.StockLimitFilter) ([]*models.StockLimit, error) {
	if filter == nil {
		filter = &models.StockLimitFilter{Limit: 50} // Default limit
	}

	limit, offset, err := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit
	filter.Offset = offset

	if filter.LimitType != "" {
		normalized, err := normalizeLimitType(filter.LimitType)
		if err != nil {
			return nil, err
		}
		filter.LimitType = normalized
	}

	return s.limitsRepo.List(ctx, filter)
}

// invalidateDashboards drops cached snapshots after a limit mutation. Stale
// cache entries expire on their own, so failures only log.
func (s *stockLimitService) invalidateDashboards(ctx context.Context) {
	if err := s.cache.InvalidateDashboards(ctx); err != nil {
		log.Printf("WARN: failed to invalidate dashboard cache: %v", err)
	}
}

// normalizeLimitType lowercases the type and defaults blank to quantity.
func normalizeLimitType(limitType string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(limitType))
	if normalized == "" {
		normalized = models.LimitTypeQuantity
	}
	if err := common.ValidateLimitType(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
