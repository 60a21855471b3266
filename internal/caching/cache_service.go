package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"salonstock/internal/analytics"
	"salonstock/internal/models"
)

type CacheService interface {
	// Upstream payload caching
	GetPayload(ctx context.Context, resource, warehouseID string) (interface{}, error)
	SetPayload(ctx context.Context, resource, warehouseID string, payload interface{}, ttl time.Duration) error

	// Dashboard snapshot caching
	GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error)
	SetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange, snapshot *analytics.Snapshot, ttl time.Duration) error
	InvalidateDashboards(ctx context.Context) error

	// Report job status tracking
	GetReportJob(ctx context.Context, jobID string) (*models.ReportJob, error)
	SetReportJob(ctx context.Context, job *models.ReportJob, ttl time.Duration) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	log.Printf("DEBUG: Creating Redis client with address: %s (original: %s)", parsedAddr, addr)

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	// Test initial connectivity
	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("DEBUG: Redis connection established successfully")
	}

	return &redisCacheService{client: client}
}

// payloadKey scopes raw upstream responses by resource and warehouse. An empty
// warehouseID represents the unscoped fetch.
func payloadKey(resource, warehouseID string) string {
	if warehouseID == "" {
		warehouseID = "all"
	}
	return fmt.Sprintf("salonstock:payload:%s:%s", resource, warehouseID)
}

func dashboardKey(warehouseID string, rng analytics.DateRange) string {
	if warehouseID == "" {
		warehouseID = "all"
	}
	return fmt.Sprintf("salonstock:dashboard:%s:%s:%s", warehouseID, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
}

// AlertSentKey is the dedupe marker for one low stock alert. The alerting job
// sets it after notifying and skips the combination while it lives; deleting
// a limit clears it so a recreated limit alerts again.
func AlertSentKey(warehouseID string, barcode float64) string {
	return fmt.Sprintf("salonstock:alert:sent:%s:%s", warehouseID, strconv.FormatFloat(barcode, 'f', -1, 64))
}

func (r *redisCacheService) GetPayload(ctx context.Context, resource, warehouseID string) (interface{}, error) {
	data, err := r.client.Get(ctx, payloadKey(resource, warehouseID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *redisCacheService) SetPayload(ctx context.Context, resource, warehouseID string, payload interface{}, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, payloadKey(resource, warehouseID), data, ttl).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange) (*analytics.Snapshot, error) {
	data, err := r.client.Get(ctx, dashboardKey(warehouseID, rng)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var snapshot analytics.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, warehouseID string, rng analytics.DateRange, snapshot *analytics.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey(warehouseID, rng), data, ttl).Err()
}

// InvalidateDashboards drops every cached snapshot. Limit changes call this so
// the next dashboard request reflects the new thresholds.
func (r *redisCacheService) InvalidateDashboards(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "salonstock:dashboard:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) GetReportJob(ctx context.Context, jobID string) (*models.ReportJob, error) {
	key := fmt.Sprintf("salonstock:report:%s", jobID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // not found
		}
		return nil, err
	}

	var job models.ReportJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *redisCacheService) SetReportJob(ctx context.Context, job *models.ReportJob, ttl time.Duration) error {
	key := fmt.Sprintf("salonstock:report:%s", job.ID.String())
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "salonstock:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("salonstock:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
